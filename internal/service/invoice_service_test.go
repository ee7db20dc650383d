package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
	"github.com/marketpos/backend/internal/storage"
	"github.com/marketpos/backend/internal/storage/sqlite"
)

// fixture is a seeded store with one vendor selling one item.
type fixture struct {
	store  storage.Store
	vendor models.Vendor
	item   models.Item
	cash   models.PaymentMethod
	card   models.PaymentMethod
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	f := &fixture{store: store}

	f.vendor = models.Vendor{FirstName: "Ann"}
	require.NoError(t, store.CreateVendor(ctx, &f.vendor))

	f.item = models.Item{VendorID: f.vendor.ID, Name: "Mug", Price: money.New(2500), Stock: 3}
	require.NoError(t, store.CreateItem(ctx, &f.item))

	methods, err := store.ListPaymentMethods(ctx)
	require.NoError(t, err)
	for _, m := range methods {
		switch m.Name {
		case "Cash":
			f.cash = m
		case "Card":
			f.card = m
		}
	}
	require.NotEmpty(t, f.cash.ID)
	require.NotEmpty(t, f.card.ID)
	return f
}

func moneyPtr(m money.Money) *money.Money { return &m }

func TestCreateInvoiceCash(t *testing.T) {
	f := newFixture(t)
	svc := NewInvoiceService(f.store)

	invoice, err := svc.Create(context.Background(), CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// 2 x $25.00 = $50.00, 6% tax = $3.00, cash has no fees.
	assert.Equal(t, int64(5000), invoice.SubTotal.Amount())
	assert.Equal(t, int64(300), invoice.SalesTax.Amount())
	assert.Equal(t, int64(0), invoice.ProcessingFees.Amount())
	assert.Equal(t, int64(5300), invoice.Total.Amount())
	require.Len(t, invoice.Transactions, 1)
	assert.Equal(t, int64(2500), invoice.Transactions[0].PricePer.Amount())
}

func TestCreateInvoiceCardFees(t *testing.T) {
	f := newFixture(t)
	svc := NewInvoiceService(f.store)

	invoice, err := svc.Create(context.Background(), CreateInvoiceInput{
		PaymentMethodID: f.card.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// $0.50 flat + 3.5% of $50.00 = $2.25; card totals are not rounded.
	assert.Equal(t, int64(225), invoice.ProcessingFees.Amount())
	assert.Equal(t, int64(5525), invoice.Total.Amount())
}

func TestCreateInvoiceQuarterRounding(t *testing.T) {
	f := newFixture(t)
	svc := NewInvoiceService(f.store)

	// Override the snapshot price to something that doesn't land on a
	// quarter: $12.34 + 6% tax ($0.74) = $13.08, rounded to $13.00.
	invoice, err := svc.Create(context.Background(), CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 1, PricePer: money.New(1234)}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1234), invoice.SubTotal.Amount())
	assert.Equal(t, int64(74), invoice.SalesTax.Amount())
	assert.Equal(t, int64(1300), invoice.Total.Amount())
}

func TestCreateInvoiceStockLimit(t *testing.T) {
	f := newFixture(t)
	svc := NewInvoiceService(f.store)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 4}},
	})
	assert.ErrorIs(t, err, ErrInvalid)

	// Sell 2 of 3, then 2 more must fail; stock counts live invoices.
	_, err = svc.Create(ctx, CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 2}},
	})
	assert.ErrorIs(t, err, ErrInvalid)

	// The last unit is still sellable.
	_, err = svc.Create(ctx, CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 1}},
	})
	assert.NoError(t, err)
}

func TestCreateInvoiceArchiveReleasesStock(t *testing.T) {
	f := newFixture(t)
	svc := NewInvoiceService(f.store)
	ctx := context.Background()

	invoice, err := svc.Create(ctx, CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalid)

	require.NoError(t, svc.Archive(ctx, invoice.ID))

	_, err = svc.Create(ctx, CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 3}},
	})
	assert.NoError(t, err)
}

func TestCreateInvoiceVerification(t *testing.T) {
	f := newFixture(t)
	svc := NewInvoiceService(f.store)
	ctx := context.Background()

	// Matching client totals pass.
	_, err := svc.Create(ctx, CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 1}},
		SubTotal:        moneyPtr(money.New(2500)),
		SalesTax:        moneyPtr(money.New(150)),
		ProcessingFees:  moneyPtr(money.New(0)),
		Total:           moneyPtr(money.New(2650)),
	})
	require.NoError(t, err)

	// A stale total is rejected.
	_, err = svc.Create(ctx, CreateInvoiceInput{
		PaymentMethodID: f.cash.ID,
		Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 1}},
		Total:           moneyPtr(money.New(2600)),
	})
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewInvoiceService(f.store)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateInvoiceInput
	}{
		{
			name:  "no transactions",
			input: CreateInvoiceInput{PaymentMethodID: f.cash.ID},
		},
		{
			name: "missing payment method",
			input: CreateInvoiceInput{
				Lines: []InvoiceLine{{ItemID: f.item.ID, Quantity: 1}},
			},
		},
		{
			name: "unknown payment method",
			input: CreateInvoiceInput{
				PaymentMethodID: "nope",
				Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 1}},
			},
		},
		{
			name: "unknown item",
			input: CreateInvoiceInput{
				PaymentMethodID: f.cash.ID,
				Lines:           []InvoiceLine{{ItemID: "nope", Quantity: 1}},
			},
		},
		{
			name: "zero quantity",
			input: CreateInvoiceInput{
				PaymentMethodID: f.cash.ID,
				Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 0}},
			},
		},
		{
			name: "negative price",
			input: CreateInvoiceInput{
				PaymentMethodID: f.cash.ID,
				Lines:           []InvoiceLine{{ItemID: f.item.ID, Quantity: 1, PricePer: money.New(-1)}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestArchiveUnknownInvoice(t *testing.T) {
	f := newFixture(t)
	svc := NewInvoiceService(f.store)

	err := svc.Archive(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
