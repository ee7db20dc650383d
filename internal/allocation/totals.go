package allocation

import (
	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

// PaymentTotal aggregates the live invoices for one payment method.
type PaymentTotal struct {
	PaymentMethodID string      `json:"paymentMethodId"`
	Name            string      `json:"name"`
	SubTotal        money.Money `json:"subTotal"`
	Fees            money.Money `json:"fees"`
	Taxes           money.Money `json:"taxes"`
	Total           money.Money `json:"total"`
}

// PaymentTotals computes per-method totals across the live invoices, one
// entry per payment method in method order. Methods that took no money are
// included with zero totals; display layers that only want non-zero rows
// filter afterwards.
func PaymentTotals(invoices []models.Invoice, methods []models.PaymentMethod) []PaymentTotal {
	totals := make([]PaymentTotal, 0, len(methods))
	for _, method := range methods {
		t := PaymentTotal{
			PaymentMethodID: method.ID,
			Name:            method.Name,
			SubTotal:        money.Zero(),
			Fees:            money.Zero(),
			Taxes:           money.Zero(),
			Total:           money.Zero(),
		}
		for _, invoice := range invoices {
			if invoice.Archived || invoice.PaymentMethodID != method.ID {
				continue
			}
			t.SubTotal = t.SubTotal.Add(invoice.SubTotal)
			t.Fees = t.Fees.Add(invoice.ProcessingFees)
			t.Taxes = t.Taxes.Add(invoice.SalesTax)
			t.Total = t.Total.Add(invoice.Total)
		}
		totals = append(totals, t)
	}
	return totals
}

// GrandTotal is the sum across every payment method.
type GrandTotal struct {
	SubTotal money.Money `json:"subTotal"`
	Fees     money.Money `json:"fees"`
	Taxes    money.Money `json:"taxes"`
	Total    money.Money `json:"total"`
}

// Grand sums a set of payment totals.
func Grand(totals []PaymentTotal) GrandTotal {
	g := GrandTotal{
		SubTotal: money.Zero(),
		Fees:     money.Zero(),
		Taxes:    money.Zero(),
		Total:    money.Zero(),
	}
	for _, t := range totals {
		g.SubTotal = g.SubTotal.Add(t.SubTotal)
		g.Fees = g.Fees.Add(t.Fees)
		g.Taxes = g.Taxes.Add(t.Taxes)
		g.Total = g.Total.Add(t.Total)
	}
	return g
}

// StateTax computes the slice of collected sales tax owed to the state,
// shareBps in basis points.
func StateTax(collectedTax money.Money, shareBps int64) money.Money {
	return collectedTax.PercentageScaled(shareBps, 1)
}
