package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

// CreateItem persists a new item.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO items (id, vendor_id, name, price, stock, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		item.ID, item.VendorID, item.Name, item.Price.Amount(), item.Stock, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// ListItems returns all items in creation order.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, vendor_id, name, price, stock, created_at FROM items ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var price int64
		if err := rows.Scan(&item.ID, &item.VendorID, &item.Name, &price, &item.Stock, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Price = money.New(price)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// UpdateItem updates an item's fields. Existing transactions keep their
// snapshotted prices regardless.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE items SET vendor_id = ?, name = ?, price = ?, stock = ? WHERE id = ?",
		item.VendorID, item.Name, item.Price.Amount(), item.Stock, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return requireRow(result)
}

// DeleteItem removes an item. The transactions foreign key makes this fail
// once the item has been sold.
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return requireRow(result)
}

// SoldQuantities sums the sold quantity per item across live invoices.
func (s *SQLiteStore) SoldQuantities(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.item_id, SUM(t.quantity)
		 FROM transactions t
		 JOIN invoices i ON i.id = t.invoice_id
		 WHERE i.archived = 0
		 GROUP BY t.item_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sold quantities: %w", err)
	}
	defer rows.Close()

	sold := make(map[string]int64)
	for rows.Next() {
		var itemID string
		var quantity int64
		if err := rows.Scan(&itemID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan sold quantity: %w", err)
		}
		sold[itemID] = quantity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sold quantities: %w", err)
	}
	return sold, nil
}
