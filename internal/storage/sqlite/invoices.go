package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

// CreateInvoice persists an invoice and its transactions atomically.
func (s *SQLiteStore) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.Timestamp == 0 {
		invoice.Timestamp = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices (id, timestamp, payment_method_id, check_number, archived, sub_total, sales_tax, processing_fees, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID, invoice.Timestamp, invoice.PaymentMethodID, invoice.CheckNumber,
		boolToInt(invoice.Archived), invoice.SubTotal.Amount(), invoice.SalesTax.Amount(),
		invoice.ProcessingFees.Amount(), invoice.Total.Amount(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	for i := range invoice.Transactions {
		line := &invoice.Transactions[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.InvoiceID = invoice.ID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO transactions (id, invoice_id, item_id, quantity, price_per) VALUES (?, ?, ?, ?, ?)",
			line.ID, line.InvoiceID, line.ItemID, line.Quantity, line.PricePer.Amount(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListInvoices returns invoices with their transactions, newest first.
func (s *SQLiteStore) ListInvoices(ctx context.Context, includeArchived bool) ([]models.Invoice, error) {
	query := `SELECT id, timestamp, payment_method_id, check_number, archived, sub_total, sales_tax, processing_fees, total
	          FROM invoices`
	if !includeArchived {
		query += " WHERE archived = 0"
	}
	query += " ORDER BY timestamp DESC, id"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		var archived int
		var subTotal, salesTax, fees, total int64
		if err := rows.Scan(&inv.ID, &inv.Timestamp, &inv.PaymentMethodID, &inv.CheckNumber,
			&archived, &subTotal, &salesTax, &fees, &total); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		inv.Archived = archived != 0
		inv.SubTotal = money.New(subTotal)
		inv.SalesTax = money.New(salesTax)
		inv.ProcessingFees = money.New(fees)
		inv.Total = money.New(total)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	for i := range invoices {
		if err := s.loadTransactions(ctx, &invoices[i]); err != nil {
			return nil, err
		}
	}
	return invoices, nil
}

// loadTransactions fills an invoice's line items in insertion order.
func (s *SQLiteStore) loadTransactions(ctx context.Context, invoice *models.Invoice) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, item_id, quantity, price_per FROM transactions WHERE invoice_id = ? ORDER BY rowid",
		invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.Transaction
		var pricePer int64
		if err := rows.Scan(&line.ID, &line.ItemID, &line.Quantity, &pricePer); err != nil {
			return fmt.Errorf("failed to scan transaction: %w", err)
		}
		line.InvoiceID = invoice.ID
		line.PricePer = money.New(pricePer)
		invoice.Transactions = append(invoice.Transactions, line)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return nil
}

// ArchiveInvoice soft-deletes an invoice; its transactions stay for
// history but stop counting toward totals and pools.
func (s *SQLiteStore) ArchiveInvoice(ctx context.Context, invoiceID string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE invoices SET archived = 1 WHERE id = ? AND archived = 0", invoiceID,
	)
	if err != nil {
		return fmt.Errorf("failed to archive invoice: %w", err)
	}
	return requireRow(result)
}
