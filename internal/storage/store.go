// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/marketpos/backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the services need. The
// abstraction keeps the service layer independent of the backing database.
type Store interface {
	// CreateVendor persists a new vendor, assigning ID and CreatedAt.
	CreateVendor(ctx context.Context, vendor *models.Vendor) error

	// ListVendors returns all vendors in creation order.
	ListVendors(ctx context.Context) ([]models.Vendor, error)

	// UpdateVendor updates a vendor's display fields.
	UpdateVendor(ctx context.Context, vendor *models.Vendor) error

	// DeleteVendor removes a vendor and its items. Fails if any of the
	// vendor's items have been sold.
	DeleteVendor(ctx context.Context, vendorID string) error

	// CreateItem persists a new item, assigning ID and CreatedAt.
	CreateItem(ctx context.Context, item *models.Item) error

	// ListItems returns all items in creation order.
	ListItems(ctx context.Context) ([]models.Item, error)

	// UpdateItem updates an item's name, price, stock, and owner.
	UpdateItem(ctx context.Context, item *models.Item) error

	// DeleteItem removes an item. Fails if the item has been sold.
	DeleteItem(ctx context.Context, itemID string) error

	// CreatePaymentMethod persists a new payment method.
	CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error

	// ListPaymentMethods returns all payment methods in creation order.
	// Settlement pool order follows this order.
	ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)

	// CreateInvoice persists an invoice with its transactions atomically.
	CreateInvoice(ctx context.Context, invoice *models.Invoice) error

	// ListInvoices returns invoices with their transactions, newest first.
	// Archived invoices are included only when includeArchived is set.
	ListInvoices(ctx context.Context, includeArchived bool) ([]models.Invoice, error)

	// ArchiveInvoice soft-deletes an invoice.
	ArchiveInvoice(ctx context.Context, invoiceID string) error

	// SoldQuantities returns, per item ID, the quantity sold across all
	// live (non-archived) invoices.
	SoldQuantities(ctx context.Context) (map[string]int64, error)

	// GetConfig returns the market-wide configuration.
	GetConfig(ctx context.Context) (*models.GlobalConfig, error)

	// UpdateConfig replaces the market-wide configuration.
	UpdateConfig(ctx context.Context, config *models.GlobalConfig) error

	// Close releases any resources held by the store.
	Close() error
}
