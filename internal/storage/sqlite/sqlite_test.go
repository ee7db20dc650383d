package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
	"github.com/marketpos/backend/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeedDefaults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	methods, err := store.ListPaymentMethods(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 4)

	assert.Equal(t, "Cash", methods[0].Name)
	assert.True(t, methods[0].RoundToQuarter)
	assert.Equal(t, "Card", methods[1].Name)
	assert.Equal(t, int64(50), methods[1].FlatFee.Amount())
	assert.Equal(t, int64(350), methods[1].PercentFeeBps)

	cfg, err := store.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(600), cfg.SalesTaxRateBps)
	assert.Equal(t, int64(1000), cfg.StateTaxShareBps)
}

func TestVendorCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	vendor := &models.Vendor{FirstName: "Ann", LastName: "Archer"}
	require.NoError(t, store.CreateVendor(ctx, vendor))
	require.NotEmpty(t, vendor.ID)

	vendors, err := store.ListVendors(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Ann Archer", vendors[0].Name())

	vendor.LastName = "Baker"
	require.NoError(t, store.UpdateVendor(ctx, vendor))
	vendors, err = store.ListVendors(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Baker", vendors[0].LastName)

	require.NoError(t, store.DeleteVendor(ctx, vendor.ID))
	assert.ErrorIs(t, store.DeleteVendor(ctx, vendor.ID), storage.ErrNotFound)
}

func TestItemCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	vendor := &models.Vendor{FirstName: "Ann"}
	require.NoError(t, store.CreateVendor(ctx, vendor))

	item := &models.Item{VendorID: vendor.ID, Name: "Mug", Price: money.New(2500), Stock: 10}
	require.NoError(t, store.CreateItem(ctx, item))

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2500), items[0].Price.Amount())
	assert.Equal(t, int64(10), items[0].Stock)

	item.Price = money.New(2750)
	item.Stock = 8
	require.NoError(t, store.UpdateItem(ctx, item))
	items, err = store.ListItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2750), items[0].Price.Amount())

	require.NoError(t, store.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, store.DeleteItem(ctx, item.ID), storage.ErrNotFound)
}

func TestInvoiceLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	vendor := &models.Vendor{FirstName: "Ann"}
	require.NoError(t, store.CreateVendor(ctx, vendor))
	item := &models.Item{VendorID: vendor.ID, Name: "Mug", Price: money.New(2500), Stock: 10}
	require.NoError(t, store.CreateItem(ctx, item))

	methods, err := store.ListPaymentMethods(ctx)
	require.NoError(t, err)
	cash := methods[0]

	invoice := &models.Invoice{
		PaymentMethodID: cash.ID,
		SubTotal:        money.New(5000),
		SalesTax:        money.New(300),
		ProcessingFees:  money.New(0),
		Total:           money.New(5300),
		Transactions: []models.Transaction{
			{ItemID: item.ID, Quantity: 2, PricePer: money.New(2500)},
		},
	}
	require.NoError(t, store.CreateInvoice(ctx, invoice))
	require.NotEmpty(t, invoice.ID)

	invoices, err := store.ListInvoices(ctx, false)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	require.Len(t, invoices[0].Transactions, 1)
	assert.Equal(t, int64(2500), invoices[0].Transactions[0].PricePer.Amount())
	assert.Equal(t, int64(5300), invoices[0].Total.Amount())

	sold, err := store.SoldQuantities(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sold[item.ID])

	// The sold item cannot be deleted out from under its history.
	assert.Error(t, store.DeleteItem(ctx, item.ID))

	require.NoError(t, store.ArchiveInvoice(ctx, invoice.ID))
	assert.ErrorIs(t, store.ArchiveInvoice(ctx, invoice.ID), storage.ErrNotFound)

	invoices, err = store.ListInvoices(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, invoices)

	// Archived invoices no longer hold stock.
	sold, err = store.SoldQuantities(ctx)
	require.NoError(t, err)
	assert.Zero(t, sold[item.ID])

	invoices, err = store.ListInvoices(ctx, true)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.True(t, invoices[0].Archived)
}

func TestConfigRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateConfig(ctx, &models.GlobalConfig{
		SalesTaxRateBps:  725,
		StateTaxShareBps: 1500,
	}))

	cfg, err := store.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(725), cfg.SalesTaxRateBps)
	assert.Equal(t, int64(1500), cfg.StateTaxShareBps)
}
