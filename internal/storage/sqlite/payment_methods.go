package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/money"
)

// CreatePaymentMethod persists a new payment method.
func (s *SQLiteStore) CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	if method.ID == "" {
		method.ID = uuid.New().String()
	}
	if method.CreatedAt == 0 {
		method.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment_methods (id, name, active, flat_fee, percent_fee_bps, round_to_quarter, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		method.ID, method.Name, boolToInt(method.Active), method.FlatFee.Amount(),
		method.PercentFeeBps, boolToInt(method.RoundToQuarter), method.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment method: %w", err)
	}
	return nil
}

// ListPaymentMethods returns all payment methods in creation order. The
// settlement engine's pool order follows this order.
func (s *SQLiteStore) ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, active, flat_fee, percent_fee_bps, round_to_quarter, created_at
		 FROM payment_methods ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	var methods []models.PaymentMethod
	for rows.Next() {
		var m models.PaymentMethod
		var active, round int
		var flatFee int64
		if err := rows.Scan(&m.ID, &m.Name, &active, &flatFee, &m.PercentFeeBps, &round, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		m.Active = active != 0
		m.RoundToQuarter = round != 0
		m.FlatFee = money.New(flatFee)
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment methods: %w", err)
	}
	return methods, nil
}
