package service

import (
	"context"
	"log/slog"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
	"github.com/marketpos/backend/internal/storage"
)

// InvoiceService rings up sales. Totals are computed server-side from the
// snapshot prices; client-supplied figures are only ever verified, never
// trusted.
type InvoiceService struct {
	store storage.Store
}

// NewInvoiceService creates a new InvoiceService with the given storage backend.
func NewInvoiceService(store storage.Store) *InvoiceService {
	return &InvoiceService{store: store}
}

// InvoiceLine is one requested line item on a new invoice.
type InvoiceLine struct {
	ItemID   string `json:"itemId"`
	Quantity int64  `json:"quantity"`

	// PricePer overrides the item's current price for this sale (haggling
	// happens). Zero means "use the item's price"; negative is rejected.
	PricePer money.Money `json:"pricePer"`
}

// CreateInvoiceInput is the checkout request.
type CreateInvoiceInput struct {
	PaymentMethodID string        `json:"paymentMethodId"`
	CheckNumber     string        `json:"checkNumber"`
	Lines           []InvoiceLine `json:"transactions"`

	// Optional client-computed totals. When present they must match the
	// server's computation exactly or the sale is rejected, so a stale
	// till screen can never record a total the customer didn't see.
	SubTotal       *money.Money `json:"subTotal,omitempty"`
	SalesTax       *money.Money `json:"salesTax,omitempty"`
	ProcessingFees *money.Money `json:"processingFees,omitempty"`
	Total          *money.Money `json:"total,omitempty"`
}

// Create validates the checkout, computes the invoice totals and persists
// the invoice with its transactions.
func (s *InvoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error) {
	if len(input.Lines) == 0 {
		return nil, invalidf("needs at least one transaction")
	}

	method, err := s.findPaymentMethod(ctx, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[string]models.Item, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	sold, err := s.store.SoldQuantities(ctx)
	if err != nil {
		return nil, err
	}

	subTotal := money.Zero()
	transactions := make([]models.Transaction, 0, len(input.Lines))
	requested := make(map[string]int64, len(input.Lines))
	for _, line := range input.Lines {
		item, ok := itemsByID[line.ItemID]
		if !ok {
			return nil, invalidf("unknown item %q", line.ItemID)
		}
		if line.Quantity <= 0 {
			return nil, invalidf("quantity for %s must be positive", item.Name)
		}
		if line.PricePer.IsNegative() {
			return nil, invalidf("price for %s cannot be negative", item.Name)
		}

		requested[item.ID] += line.Quantity
		if item.Stock < sold[item.ID]+requested[item.ID] {
			return nil, invalidf("not enough stock remaining to sell %d of %s", line.Quantity, item.Name)
		}

		pricePer := line.PricePer
		if pricePer.IsZero() {
			pricePer = item.Price
		}
		subTotal = subTotal.Add(pricePer.Multiply(line.Quantity))
		transactions = append(transactions, models.Transaction{
			ItemID:   item.ID,
			Quantity: line.Quantity,
			PricePer: pricePer,
		})
	}

	cfg, err := s.store.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	salesTax := subTotal.PercentageScaled(cfg.SalesTaxRateBps, 1)
	fees := method.FlatFee.Add(subTotal.PercentageScaled(method.PercentFeeBps, 1))
	total := subTotal.Add(salesTax).Add(fees)
	if method.RoundToQuarter {
		total = total.ToNearestQuarter()
	}

	if err := verifyTotals(input, subTotal, salesTax, fees, total); err != nil {
		slog.Warn("Invoice verification failed",
			"payment_method", method.Name,
			"sub_total", subTotal,
			"total", total,
		)
		return nil, err
	}

	invoice := &models.Invoice{
		PaymentMethodID: method.ID,
		CheckNumber:     input.CheckNumber,
		SubTotal:        subTotal,
		SalesTax:        salesTax,
		ProcessingFees:  fees,
		Total:           total,
		Transactions:    transactions,
	}
	if err := s.store.CreateInvoice(ctx, invoice); err != nil {
		slog.Error("CreateInvoice failed", "error", err)
		return nil, err
	}

	slog.Info("Invoice created",
		"invoice_id", invoice.ID,
		"payment_method", method.Name,
		"transactions", len(transactions),
		"total", total,
	)
	return invoice, nil
}

// List returns the live invoices, newest first.
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	return s.store.ListInvoices(ctx, false)
}

// Archive soft-deletes an invoice, releasing its stock and removing it from
// totals and pools.
func (s *InvoiceService) Archive(ctx context.Context, invoiceID string) error {
	if err := s.store.ArchiveInvoice(ctx, invoiceID); err != nil {
		return err
	}
	slog.Info("Invoice archived", "invoice_id", invoiceID)
	return nil
}

func (s *InvoiceService) findPaymentMethod(ctx context.Context, id string) (*models.PaymentMethod, error) {
	if id == "" {
		return nil, invalidf("needs a payment method")
	}
	methods, err := s.store.ListPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	for i := range methods {
		if methods[i].ID == id {
			if !methods[i].Active {
				return nil, invalidf("payment method %s is inactive", methods[i].Name)
			}
			return &methods[i], nil
		}
	}
	return nil, invalidf("invalid payment method %q", id)
}

func verifyTotals(input CreateInvoiceInput, subTotal, salesTax, fees, total money.Money) error {
	if input.SubTotal != nil && !input.SubTotal.Equal(subTotal) {
		return ErrVerificationFailed
	}
	if input.SalesTax != nil && !input.SalesTax.Equal(salesTax) {
		return ErrVerificationFailed
	}
	if input.ProcessingFees != nil && !input.ProcessingFees.Equal(fees) {
		return ErrVerificationFailed
	}
	if input.Total != nil && !input.Total.Equal(total) {
		return ErrVerificationFailed
	}
	return nil
}
