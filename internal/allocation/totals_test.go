package allocation

import (
	"testing"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

func TestPaymentTotals(t *testing.T) {
	methods := []models.PaymentMethod{
		{ID: "cash", Name: "Cash", Active: true},
		{ID: "card", Name: "Card", Active: true},
		{ID: "venmo", Name: "Venmo", Active: true},
	}
	invoices := []models.Invoice{
		{
			ID: "a", PaymentMethodID: "cash",
			SubTotal: money.New(10000), SalesTax: money.New(600),
			ProcessingFees: money.New(0), Total: money.New(10600),
		},
		{
			ID: "b", PaymentMethodID: "card",
			SubTotal: money.New(5000), SalesTax: money.New(300),
			ProcessingFees: money.New(225), Total: money.New(5525),
		},
		{
			ID: "c", PaymentMethodID: "cash", Archived: true,
			SubTotal: money.New(7777), Total: money.New(7777),
		},
	}

	totals := PaymentTotals(invoices, methods)
	if len(totals) != 3 {
		t.Fatalf("got %d totals, want one per method", len(totals))
	}

	cash := totals[0]
	if cash.SubTotal.Amount() != 10000 || cash.Taxes.Amount() != 600 || cash.Total.Amount() != 10600 {
		t.Errorf("cash totals = %+v (archived invoice must not count)", cash)
	}
	card := totals[1]
	if card.Fees.Amount() != 225 || card.Total.Amount() != 5525 {
		t.Errorf("card totals = %+v", card)
	}
	if !totals[2].Total.IsZero() {
		t.Errorf("venmo total = %v, want zero entry kept for display", totals[2].Total)
	}

	grand := Grand(totals)
	if grand.Total.Amount() != 16125 || grand.Taxes.Amount() != 900 || grand.Fees.Amount() != 225 {
		t.Errorf("grand totals = %+v", grand)
	}

	// 10% of the collected tax is owed to the state.
	if got := StateTax(grand.Taxes, 1000).Amount(); got != 90 {
		t.Errorf("state tax = %d, want 90", got)
	}
}
