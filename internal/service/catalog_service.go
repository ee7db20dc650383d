package service

import (
	"context"
	"log/slog"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/storage"
)

// CatalogService manages vendors, items, payment methods and the global
// configuration.
type CatalogService struct {
	store storage.Store
}

// NewCatalogService creates a new CatalogService with the given storage backend.
func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store}
}

// CreateVendor validates and persists a new vendor.
func (s *CatalogService) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	if vendor.FirstName == "" {
		return invalidf("vendor needs a first name")
	}
	if err := s.store.CreateVendor(ctx, vendor); err != nil {
		slog.Error("CreateVendor failed", "error", err)
		return err
	}
	slog.Info("Vendor created", "vendor_id", vendor.ID, "name", vendor.Name())
	return nil
}

// ListVendors returns all vendors.
func (s *CatalogService) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return s.store.ListVendors(ctx)
}

// UpdateVendor updates a vendor's display data.
func (s *CatalogService) UpdateVendor(ctx context.Context, vendor *models.Vendor) error {
	if vendor.FirstName == "" {
		return invalidf("vendor needs a first name")
	}
	return s.store.UpdateVendor(ctx, vendor)
}

// DeleteVendor removes a vendor. Fails while the vendor still owns items.
func (s *CatalogService) DeleteVendor(ctx context.Context, vendorID string) error {
	return s.store.DeleteVendor(ctx, vendorID)
}

// ItemWithSales is an item annotated with how many units live invoices have
// sold and how many remain sellable.
type ItemWithSales struct {
	models.Item
	Sold      int64 `json:"sold"`
	Remaining int64 `json:"remaining"`
}

// CreateItem validates and persists a new item.
func (s *CatalogService) CreateItem(ctx context.Context, item *models.Item) error {
	if item.Name == "" {
		return invalidf("item needs a name")
	}
	if item.VendorID == "" {
		return invalidf("item needs a vendor")
	}
	if item.Price.IsNegative() {
		return invalidf("item price cannot be negative")
	}
	if item.Stock < 0 {
		return invalidf("item stock cannot be negative")
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		slog.Error("CreateItem failed", "error", err)
		return err
	}
	slog.Info("Item created", "item_id", item.ID, "vendor_id", item.VendorID, "name", item.Name)
	return nil
}

// ListItems returns all items with their sold and remaining quantities.
func (s *CatalogService) ListItems(ctx context.Context) ([]ItemWithSales, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	sold, err := s.store.SoldQuantities(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ItemWithSales, len(items))
	for i, item := range items {
		result[i] = ItemWithSales{
			Item:      item,
			Sold:      sold[item.ID],
			Remaining: item.Stock - sold[item.ID],
		}
	}
	return result, nil
}

// UpdateItem updates an item. Past sales keep their snapshotted prices.
func (s *CatalogService) UpdateItem(ctx context.Context, item *models.Item) error {
	if item.Name == "" {
		return invalidf("item needs a name")
	}
	if item.Price.IsNegative() {
		return invalidf("item price cannot be negative")
	}
	if item.Stock < 0 {
		return invalidf("item stock cannot be negative")
	}
	return s.store.UpdateItem(ctx, item)
}

// DeleteItem removes an item. Fails once the item has been sold.
func (s *CatalogService) DeleteItem(ctx context.Context, itemID string) error {
	return s.store.DeleteItem(ctx, itemID)
}

// CreatePaymentMethod validates and persists a new payment method.
func (s *CatalogService) CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	if method.Name == "" {
		return invalidf("payment method needs a name")
	}
	if method.FlatFee.IsNegative() {
		return invalidf("flat fee cannot be negative")
	}
	if method.PercentFeeBps < 0 || method.PercentFeeBps > 10000 {
		return invalidf("percent fee must be between 0 and 10000 basis points")
	}
	if err := s.store.CreatePaymentMethod(ctx, method); err != nil {
		slog.Error("CreatePaymentMethod failed", "error", err)
		return err
	}
	slog.Info("Payment method created", "payment_method_id", method.ID, "name", method.Name)
	return nil
}

// ListPaymentMethods returns all payment methods in creation order.
func (s *CatalogService) ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	return s.store.ListPaymentMethods(ctx)
}

// GetConfig returns the market-wide configuration.
func (s *CatalogService) GetConfig(ctx context.Context) (*models.GlobalConfig, error) {
	return s.store.GetConfig(ctx)
}

// UpdateConfig validates and replaces the market-wide configuration.
func (s *CatalogService) UpdateConfig(ctx context.Context, cfg *models.GlobalConfig) error {
	if cfg.SalesTaxRateBps < 0 || cfg.SalesTaxRateBps > 10000 {
		return invalidf("sales tax rate must be between 0 and 10000 basis points")
	}
	if cfg.StateTaxShareBps < 0 || cfg.StateTaxShareBps > 10000 {
		return invalidf("state tax share must be between 0 and 10000 basis points")
	}
	if err := s.store.UpdateConfig(ctx, cfg); err != nil {
		return err
	}
	slog.Info("Config updated",
		"sales_tax_rate_bps", cfg.SalesTaxRateBps,
		"state_tax_share_bps", cfg.StateTaxShareBps,
	)
	return nil
}
