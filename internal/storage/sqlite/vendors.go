package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/storage"
)

// CreateVendor persists a new vendor.
func (s *SQLiteStore) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	if vendor.CreatedAt == 0 {
		vendor.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO vendors (id, first_name, last_name, created_at) VALUES (?, ?, ?, ?)",
		vendor.ID, vendor.FirstName, vendor.LastName, vendor.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert vendor: %w", err)
	}
	return nil
}

// ListVendors returns all vendors in creation order.
func (s *SQLiteStore) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, first_name, last_name, created_at FROM vendors ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vendors: %w", err)
	}
	return vendors, nil
}

// UpdateVendor updates a vendor's display fields.
func (s *SQLiteStore) UpdateVendor(ctx context.Context, vendor *models.Vendor) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE vendors SET first_name = ?, last_name = ? WHERE id = ?",
		vendor.FirstName, vendor.LastName, vendor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	return requireRow(result)
}

// DeleteVendor removes a vendor. Items cascade; the delete fails if any of
// the vendor's items appear on an invoice, which protects sales history.
func (s *SQLiteStore) DeleteVendor(ctx context.Context, vendorID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM vendors WHERE id = ?", vendorID)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	return requireRow(result)
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// isNoRows reports whether err is the driver's no-rows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
