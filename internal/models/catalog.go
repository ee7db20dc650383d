package models

import "github.com/marketpos/backend/internal/money"

// Vendor is an independent seller in the market. The settlement engine only
// cares about the ID; the rest is display data for the admin screens.
type Vendor struct {
	// ID is the unique identifier for the vendor (UUID format).
	ID string `json:"id"`

	// FirstName and LastName make up the display name.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// CreatedAt is the Unix timestamp when the vendor was added.
	CreatedAt int64 `json:"createdAt"`
}

// Name returns the vendor's display name.
func (v Vendor) Name() string {
	if v.LastName == "" {
		return v.FirstName
	}
	return v.FirstName + " " + v.LastName
}

// Item is a sellable good owned by one vendor.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// VendorID is the owning vendor. Revenue from this item is attributed
	// to that vendor.
	VendorID string `json:"vendorId"`

	// Name is the display name of the item.
	Name string `json:"name"`

	// Price is the current unit price. Sales snapshot the price onto the
	// transaction, so changing this never rewrites history.
	Price money.Money `json:"price"`

	// Stock is the quantity put on the shelf. Checkout refuses to sell more
	// than Stock minus what live invoices have already sold.
	Stock int64 `json:"stock"`

	// CreatedAt is the Unix timestamp when the item was added.
	CreatedAt int64 `json:"createdAt"`
}

// PaymentMethod is a way customers pay at the till.
type PaymentMethod struct {
	// ID is the unique identifier for the payment method (UUID format).
	ID string `json:"id"`

	// Name is the display name (e.g. "Cash", "Card").
	Name string `json:"name"`

	// Active controls whether new invoices may use this method. Inactive
	// methods keep their history but take no new sales and build no pools.
	Active bool `json:"active"`

	// FlatFee is the fixed processing fee charged per invoice.
	FlatFee money.Money `json:"flatFee"`

	// PercentFeeBps is the proportional processing fee in basis points
	// (350 = 3.5%).
	PercentFeeBps int64 `json:"percentFeeBps"`

	// RoundToQuarter rounds the invoice total to the nearest $0.25.
	// Used for cash so the drawer never needs small coins. This is the
	// only intentional precision loss in the system.
	RoundToQuarter bool `json:"roundToQuarter"`

	// CreatedAt is the Unix timestamp when the method was created. Pool
	// ordering during settlement follows creation order, so the seeded
	// "Cash" method drains first.
	CreatedAt int64 `json:"createdAt"`
}

// GlobalConfig holds market-wide settings, stored as a single row.
type GlobalConfig struct {
	// SalesTaxRateBps is the sales-tax rate in basis points (600 = 6%).
	SalesTaxRateBps int64 `json:"salesTaxRateBps"`

	// StateTaxShareBps is the slice of collected sales tax owed to the
	// state, in basis points. Display figure on the payment-totals report.
	StateTaxShareBps int64 `json:"stateTaxShareBps"`
}
