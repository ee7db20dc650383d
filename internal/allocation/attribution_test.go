package allocation

import (
	"testing"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

func TestVendorSubTotals(t *testing.T) {
	vendors := []models.Vendor{
		{ID: "v1", FirstName: "Ann"},
		{ID: "v2", FirstName: "Ben"},
	}
	items := []models.Item{
		{ID: "mug", VendorID: "v1"},
		{ID: "hat", VendorID: "v2"},
	}
	invoices := []models.Invoice{
		{
			ID: "inv1", PaymentMethodID: "cash",
			Transactions: []models.Transaction{
				{ItemID: "mug", Quantity: 2, PricePer: money.New(2500)},
				{ItemID: "hat", Quantity: 1, PricePer: money.New(1000)},
			},
		},
		{
			ID: "inv2", PaymentMethodID: "card",
			Transactions: []models.Transaction{
				// Snapshot price differs from whatever the item costs now.
				{ItemID: "mug", Quantity: 1, PricePer: money.New(2000)},
			},
		},
		{
			ID: "inv3", PaymentMethodID: "cash", Archived: true,
			Transactions: []models.Transaction{
				{ItemID: "hat", Quantity: 5, PricePer: money.New(1000)},
			},
		},
	}

	totals := VendorSubTotals(vendors, invoices, items)

	if got := totals["v1"].Amount(); got != 7000 {
		t.Errorf("v1 sub-total = %d, want 7000", got)
	}
	if got := totals["v2"].Amount(); got != 1000 {
		t.Errorf("v2 sub-total = %d (archived invoice must not count), want 1000", got)
	}

	// The standalone single-vendor form agrees with the batch form.
	single := VendorSubTotal(vendors[0], invoices, items)
	if !single.Equal(totals["v1"]) {
		t.Errorf("VendorSubTotal = %v, VendorSubTotals = %v", single, totals["v1"])
	}
}

func TestVendorSubTotalsIgnoresUnknownItems(t *testing.T) {
	vendors := []models.Vendor{{ID: "v1"}}
	invoices := []models.Invoice{
		{
			ID: "inv1",
			Transactions: []models.Transaction{
				{ItemID: "ghost", Quantity: 3, PricePer: money.New(100)},
			},
		},
	}

	totals := VendorSubTotals(vendors, invoices, nil)
	if !totals["v1"].IsZero() {
		t.Errorf("transactions on unknown items attributed money: %v", totals["v1"])
	}
}

func TestBuildPools(t *testing.T) {
	methods := []models.PaymentMethod{
		{ID: "cash", Name: "Cash", Active: true},
		{ID: "card", Name: "Card", Active: true},
		{ID: "old", Name: "Retired", Active: false},
	}
	invoices := []models.Invoice{
		{
			ID: "inv1", PaymentMethodID: "cash",
			SubTotal: money.New(10000), ProcessingFees: money.New(0), SalesTax: money.New(600),
		},
		{
			ID: "inv2", PaymentMethodID: "card",
			SubTotal: money.New(5000), ProcessingFees: money.New(225), SalesTax: money.New(300),
		},
		{
			ID: "inv3", PaymentMethodID: "cash", Archived: true,
			SubTotal: money.New(99999),
		},
	}

	t.Run("sub-totals only", func(t *testing.T) {
		pools := BuildPools(invoices, methods, PoolOptions{})
		if len(pools) != 2 {
			t.Fatalf("got %d pools, want 2 (inactive method excluded)", len(pools))
		}
		if pools[0].PaymentMethodID != "cash" || pools[0].Balance.Amount() != 10000 {
			t.Errorf("cash pool = %+v, want 10000", pools[0])
		}
		if pools[1].PaymentMethodID != "card" || pools[1].Balance.Amount() != 5000 {
			t.Errorf("card pool = %+v, want 5000", pools[1])
		}
	})

	t.Run("fees and taxes folded in", func(t *testing.T) {
		pools := BuildPools(invoices, methods, PoolOptions{IncludeFees: true, IncludeTaxes: true})
		if got := pools[0].Balance.Amount(); got != 10600 {
			t.Errorf("cash pool = %d, want 10600", got)
		}
		if got := pools[1].Balance.Amount(); got != 5525 {
			t.Errorf("card pool = %d, want 5525", got)
		}
	})

	t.Run("zero pools are kept", func(t *testing.T) {
		pools := BuildPools(nil, methods, PoolOptions{})
		if len(pools) != 2 {
			t.Fatalf("got %d pools, want 2", len(pools))
		}
		for _, p := range pools {
			if !p.Balance.IsZero() {
				t.Errorf("pool %s = %v, want zero", p.Name, p.Balance)
			}
		}
	})
}
