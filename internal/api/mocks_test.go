package api_test

import (
	"context"
	"errors"
	"sync"

	"github.com/stockline/stockline/internal/llm"
	"github.com/stockline/stockline/internal/models"
)

// mockChat implements api.ChatService for testing.
type mockChat struct {
	chatFn func(ctx context.Context, sess models.Session, req models.ChatRequest) (*models.ChatResponse, error)
}

func (m *mockChat) Chat(ctx context.Context, sess models.Session, req models.ChatRequest) (*models.ChatResponse, error) {
	return m.chatFn(ctx, sess, req)
}

// mockAuditRepo implements api.AuditRepository for testing.
type mockAuditRepo struct {
	queryFn func(ctx context.Context, scope models.QueryScope, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
}

func (m *mockAuditRepo) QueryAudit(ctx context.Context, scope models.QueryScope, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
	return m.queryFn(ctx, scope, opts)
}

// mockStatsRepo implements api.StatsRepository for testing.
type mockStatsRepo struct {
	statsFn func(ctx context.Context, tenantID string) (*models.TenantStats, error)
}

func (m *mockStatsRepo) TenantStats(ctx context.Context, tenantID string) (*models.TenantStats, error) {
	return m.statsFn(ctx, tenantID)
}

// mockPinger implements api.Pinger.
type mockPinger struct{ err error }

func (m mockPinger) HealthCheck(context.Context) error { return m.err }

// mockResolver maps bearer credentials to sessions.
type mockResolver struct {
	sessions map[string]models.Session
}

func (m *mockResolver) Resolve(_ context.Context, credential string) (*models.Session, error) {
	sess, ok := m.sessions[credential]
	if !ok {
		return nil, errors.Join(models.ErrAuthentication, errors.New("unknown credential"))
	}

	return &sess, nil
}

// scriptedModel returns a fixed reply.
type scriptedModel struct {
	reply    *llm.Reply
	mu       sync.Mutex
	requests []llm.Request
}

func (m *scriptedModel) Complete(_ context.Context, req llm.Request) (*llm.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	return m.reply, nil
}

func (m *scriptedModel) Provider() string { return "scripted" }

// countingExecutor records executions.
type countingExecutor struct {
	rows  []models.Row
	mu    sync.Mutex
	calls int
}

func (e *countingExecutor) ExecuteReadOnly(context.Context, models.QueryScope, string) ([]models.Row, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++

	return e.rows, nil
}

// memoryAuditor keeps audit entries in memory.
type memoryAuditor struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (a *memoryAuditor) RecordQuery(_ context.Context, entry models.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)

	return nil
}
