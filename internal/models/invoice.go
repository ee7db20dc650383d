package models

import "github.com/marketpos/backend/internal/money"

// Invoice is one checkout through the shared till. Totals are computed and
// stored at creation time; they are never recomputed from transactions, so
// later price or tax changes cannot rewrite a sale.
type Invoice struct {
	// ID is the unique identifier for the invoice (UUID format).
	ID string `json:"id"`

	// Timestamp is the Unix timestamp of the sale.
	Timestamp int64 `json:"timestamp"`

	// PaymentMethodID is how the customer paid.
	PaymentMethodID string `json:"paymentMethodId"`

	// CheckNumber is set when the payment method is a check.
	CheckNumber string `json:"checkNumber,omitempty"`

	// Archived soft-deletes the invoice. Archived invoices are excluded
	// from totals, attribution, and payout pools.
	Archived bool `json:"archived"`

	// SubTotal is the sum of pricePer * quantity across transactions.
	SubTotal money.Money `json:"subTotal"`

	// SalesTax is the tax collected on SubTotal.
	SalesTax money.Money `json:"salesTax"`

	// ProcessingFees is the payment method's flat plus percentage fee.
	ProcessingFees money.Money `json:"processingFees"`

	// Total is SubTotal + SalesTax + ProcessingFees, quarter-rounded when
	// the payment method rounds.
	Total money.Money `json:"total"`

	// Transactions are the line items, in the order they were rung up.
	Transactions []Transaction `json:"transactions"`
}

// Transaction is one line item on an invoice. Immutable once created.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// InvoiceID is the owning invoice.
	InvoiceID string `json:"invoiceId"`

	// ItemID references the item sold.
	ItemID string `json:"itemId"`

	// Quantity is how many units were sold. Always positive.
	Quantity int64 `json:"quantity"`

	// PricePer is the unit price snapshotted at sale time. It may differ
	// from the item's current price.
	PricePer money.Money `json:"pricePer"`
}

// ShareType selects how a shared expense is divided among vendors.
type ShareType string

const (
	// ShareEqual splits the expense evenly across all vendors.
	ShareEqual ShareType = "equal"

	// ShareEarnings splits the expense proportionally to what each vendor
	// earned this market.
	ShareEarnings ShareType = "earnings"
)

// Valid reports whether the share type is one of the known values.
func (s ShareType) Valid() bool {
	return s == ShareEqual || s == ShareEarnings
}

// SharedExpense is a cost one vendor fronted on behalf of the group, to be
// reimbursed by adjusting expected earnings. Form input; not persisted.
type SharedExpense struct {
	// Name describes the expense (e.g. "Dinner", "Booth fee").
	Name string `json:"name"`

	// VendorID is the vendor who paid out of pocket.
	VendorID string `json:"vendorId"`

	// Amount is what they paid.
	Amount money.Money `json:"amount"`

	// ShareType is how the rest of the vendors chip in.
	ShareType ShareType `json:"shareType"`
}

// AssignedMoney is a manual instruction to pay a vendor a fixed amount from
// a specific payment-method pool, ahead of automatic settlement. Form
// input; not persisted.
type AssignedMoney struct {
	// VendorID is the vendor to pay.
	VendorID string `json:"vendorId"`

	// PaymentMethodID is the pool to pay from. Required: manual
	// assignments never fall back to another pool.
	PaymentMethodID string `json:"paymentMethodId"`

	// Amount is how much to pay. Must not exceed the pool's balance.
	Amount money.Money `json:"amount"`
}
