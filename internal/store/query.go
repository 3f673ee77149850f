package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/metrics"
	"github.com/stockline/stockline/internal/models"
)

// QueryStore executes gate-approved read statements.
type QueryStore struct {
	Base
}

// NewQueryStore creates a QueryStore.
func NewQueryStore(base Base) *QueryStore {
	return &QueryStore{Base: base}
}

// ExecuteReadOnly runs sql inside a read-only transaction with scope applied
// and returns every row in server order. Any failure wraps
// models.ErrQueryExecution and no partial rows are returned.
func (s *QueryStore) ExecuteReadOnly(ctx context.Context, scope models.QueryScope, sql string) ([]models.Row, error) {
	if strings.TrimSpace(sql) == "" {
		return nil, fmt.Errorf("%w: empty query", models.ErrQueryExecution)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	start := time.Now()
	rows, err := s.execute(ctx, scope, sql)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.QueryDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		s.Log.WithFields(logrus.Fields{
			"tenant_id":    scope.TenantID,
			"unrestricted": scope.Unrestricted,
		}).WithError(err).Warn("read-only query failed")

		return nil, fmt.Errorf("%w: %s", models.ErrQueryExecution, storeMessage(err))
	}

	return rows, nil
}

func (s *QueryStore) execute(ctx context.Context, scope models.QueryScope, sql string) ([]models.Row, error) {
	tx, err := s.beginReadTx(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only tx, rollback is cleanup.

	var raw []byte
	if err := tx.QueryRow(ctx, "SELECT stockline_execute_readonly($1)", sql).Scan(&raw); err != nil {
		return nil, err
	}

	return decodeRows(raw)
}

// storeMessage returns the database's own message for server errors so the
// caller sees what the store rejected.
func storeMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}

	return err.Error()
}
