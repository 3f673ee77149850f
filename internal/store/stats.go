package store

import (
	"context"
	"fmt"

	"github.com/stockline/stockline/internal/models"
)

// StatsStore computes tenant dashboards.
type StatsStore struct {
	Base
}

// NewStatsStore creates a StatsStore.
func NewStatsStore(base Base) *StatsStore {
	return &StatsStore{Base: base}
}

// TenantStats returns aggregate counts for tenantID.
func (s *StatsStore) TenantStats(ctx context.Context, tenantID string) (*models.TenantStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, models.TenantScope(tenantID))
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	var st models.TenantStats

	// Single consolidated query; RLS already limits every table to the tenant.
	if err := tx.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COUNT(*) FROM inventory WHERE quantity <= reorder_level),
			(SELECT COALESCE(SUM(total_amount), 0)::float8 FROM orders WHERE status <> 'cancelled')`,
	).Scan(
		&st.Customers, &st.Products, &st.Orders,
		&st.PendingOrders, &st.LowStockItems, &st.Revenue,
	); err != nil {
		return nil, fmt.Errorf("querying tenant stats: %w", err)
	}

	st.Revenue = float64(int64(st.Revenue*100+0.5)) / 100

	return &st, nil
}
