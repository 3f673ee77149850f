// Package store provides focused, single-concern data access stores
// for the stockline database.
//
// Each store owns one concern (identity, audit, query execution, catalogue,
// customers) and embeds shared helpers (Pool, logger) via the Base struct.
// Stores never import each other; shared logic lives in this file.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/dbpool"
	"github.com/stockline/stockline/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// setTenant sets the tenant context for RLS policies within a transaction.
// SET LOCAL takes no bind parameters; the id is embedded only after it
// passes ValidateTenantID, which admits no quotes.
func setTenant(ctx context.Context, tx pgx.Tx, tenantID string) error {
	if err := models.ValidateTenantID(tenantID); err != nil {
		return fmt.Errorf("invalid tenant ID format: %w", err)
	}

	_, err := tx.Exec(ctx, "SET LOCAL app.tenant_id = '"+tenantID+"'")
	if err != nil {
		return fmt.Errorf("setting tenant context: %w", err)
	}

	return nil
}

// setBypass lifts tenant RLS for the rest of the transaction. Only
// super-admin scopes reach this.
func setBypass(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, "SET LOCAL app.bypass_tenant = 'on'")
	if err != nil {
		return fmt.Errorf("setting tenant bypass: %w", err)
	}

	return nil
}

// applyScope sets either the tenant context or the bypass flag.
func applyScope(ctx context.Context, tx pgx.Tx, scope models.QueryScope) error {
	if scope.Unrestricted {
		return setBypass(ctx, tx)
	}

	return setTenant(ctx, tx, scope.TenantID)
}

// beginTx starts a read-write transaction with the given scope applied.
func (b *Base) beginTx(ctx context.Context, scope models.QueryScope) (pgx.Tx, error) {
	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	if err := applyScope(ctx, tx, scope); err != nil {
		tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on setup failure.

		return nil, err
	}

	return tx, nil
}

// beginReadTx starts a read-only transaction with the given scope applied.
func (b *Base) beginReadTx(ctx context.Context, scope models.QueryScope) (pgx.Tx, error) {
	tx, err := b.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}

	if err := applyScope(ctx, tx, scope); err != nil {
		tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on setup failure.

		return nil, err
	}

	return tx, nil
}
