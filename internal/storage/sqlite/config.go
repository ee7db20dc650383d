package sqlite

import (
	"context"
	"fmt"

	"github.com/marketpos/backend/internal/models"
	"github.com/marketpos/backend/internal/storage"
)

// GetConfig returns the market-wide configuration row.
func (s *SQLiteStore) GetConfig(ctx context.Context) (*models.GlobalConfig, error) {
	var cfg models.GlobalConfig
	err := s.db.QueryRowContext(ctx,
		"SELECT sales_tax_rate_bps, state_tax_share_bps FROM global_config WHERE id = 1",
	).Scan(&cfg.SalesTaxRateBps, &cfg.StateTaxShareBps)
	if isNoRows(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return &cfg, nil
}

// UpdateConfig replaces the market-wide configuration.
func (s *SQLiteStore) UpdateConfig(ctx context.Context, config *models.GlobalConfig) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO global_config (id, sales_tax_rate_bps, state_tax_share_bps)
		 VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   sales_tax_rate_bps = excluded.sales_tax_rate_bps,
		   state_tax_share_bps = excluded.state_tax_share_bps`,
		config.SalesTaxRateBps, config.StateTaxShareBps,
	)
	if err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	return nil
}
