package service

import (
	"context"
	"sync"

	"github.com/stockline/stockline/internal/models"
)

// mockAuditStore records calls and returns configured responses.
type mockAuditStore struct {
	mu    sync.Mutex
	calls []string

	recordQuery func(ctx context.Context, entry models.AuditEntry) error
	queryAudit  func(ctx context.Context, scope models.QueryScope, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
}

func (m *mockAuditStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockAuditStore) RecordQuery(ctx context.Context, entry models.AuditEntry) error {
	m.record("RecordQuery")
	return m.recordQuery(ctx, entry)
}

func (m *mockAuditStore) QueryAudit(ctx context.Context, scope models.QueryScope, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
	m.record("QueryAudit")
	return m.queryAudit(ctx, scope, opts)
}

