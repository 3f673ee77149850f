package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/stockline/stockline/internal/models"
)

// AuditStore provides data access for the audit_logs table. Entries are
// only ever inserted and read; the schema rejects updates and deletes.
type AuditStore struct {
	Base
}

// NewAuditStore creates an AuditStore.
func NewAuditStore(base Base) *AuditStore {
	return &AuditStore{Base: base}
}

// RecordQuery appends one audit entry in the entry's tenant.
func (s *AuditStore) RecordQuery(ctx context.Context, entry models.AuditEntry) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if entry.Action == "" {
		entry.Action = models.AuditActionDatabaseQuery
	}

	tx, err := s.beginTx(ctx, models.TenantScope(entry.TenantID))
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	_, err = tx.Exec(ctx, `
		INSERT INTO audit_logs (tenant_id, user_id, action, sql_text, description)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.TenantID, entry.UserID, entry.Action, entry.SQLText, entry.Description,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return tx.Commit(ctx)
}

// buildAuditFilter builds WHERE clause and args from AuditQueryOpts.
func buildAuditFilter(opts models.AuditQueryOpts) (where string, args []any, nextArg int) {
	var conditions []string
	argIdx := 1

	if opts.UserID != "" {
		conditions = append(conditions, "user_id = $"+strconv.Itoa(argIdx))
		args = append(args, opts.UserID)
		argIdx++
	}
	if opts.Action != "" {
		conditions = append(conditions, "action = $"+strconv.Itoa(argIdx))
		args = append(args, opts.Action)
		argIdx++
	}
	if opts.Since != nil {
		conditions = append(conditions, "created_at >= $"+strconv.Itoa(argIdx))
		args = append(args, *opts.Since)
		argIdx++
	}

	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	return where, args, argIdx
}

// QueryAudit returns audit entries visible in scope, newest first.
// Returns entries, hasMore flag, and any error.
func (s *AuditStore) QueryAudit(
	ctx context.Context, scope models.QueryScope, opts models.AuditQueryOpts,
) ([]models.AuditEntry, bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.beginReadTx(ctx, scope)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	where, args, argIdx := buildAuditFilter(opts)
	limit := clampLimit(opts.Limit, 50)

	query := fmt.Sprintf(
		"SELECT id, tenant_id, user_id, action, sql_text, description, created_at FROM audit_logs %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		where, argIdx, argIdx+1,
	)
	args = append(args, limit+1, opts.Offset)

	entries, err := scanAuditRows(ctx, tx, query, args)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	return entries, hasMore, nil
}

// scanAuditRows executes a query and scans audit entries from the result.
func scanAuditRows(ctx context.Context, tx pgx.Tx, query string, args []any) ([]models.AuditEntry, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.UserID, &e.Action, &e.SQLText, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}

	return entries, nil
}
