package allocation

import (
	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

// VendorSubTotal computes one vendor's earned sub-total: the sum of
// pricePer * quantity over every live invoice transaction whose item
// belongs to the vendor. This is the ground truth of what the vendor
// earned before expense sharing or manual overrides, and is independent
// of how customers paid.
func VendorSubTotal(vendor models.Vendor, invoices []models.Invoice, items []models.Item) money.Money {
	owners := itemOwners(items)
	return subTotalFor(vendor.ID, invoices, owners)
}

// VendorSubTotals computes earned sub-totals for every vendor in one pass
// over the invoices.
func VendorSubTotals(vendors []models.Vendor, invoices []models.Invoice, items []models.Item) map[string]money.Money {
	owners := itemOwners(items)

	totals := make(map[string]money.Money, len(vendors))
	for _, v := range vendors {
		totals[v.ID] = money.Zero()
	}

	for _, invoice := range invoices {
		if invoice.Archived {
			continue
		}
		for _, tx := range invoice.Transactions {
			vendorID, ok := owners[tx.ItemID]
			if !ok {
				continue
			}
			total, ok := totals[vendorID]
			if !ok {
				// Item owned by a vendor outside the snapshot.
				continue
			}
			totals[vendorID] = total.Add(tx.PricePer.Multiply(tx.Quantity))
		}
	}

	return totals
}

func itemOwners(items []models.Item) map[string]string {
	owners := make(map[string]string, len(items))
	for _, item := range items {
		owners[item.ID] = item.VendorID
	}
	return owners
}

func subTotalFor(vendorID string, invoices []models.Invoice, owners map[string]string) money.Money {
	total := money.Zero()
	for _, invoice := range invoices {
		if invoice.Archived {
			continue
		}
		for _, tx := range invoice.Transactions {
			if owners[tx.ItemID] != vendorID {
				continue
			}
			total = total.Add(tx.PricePer.Multiply(tx.Quantity))
		}
	}
	return total
}
