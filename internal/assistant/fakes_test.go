package assistant_test

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/llm"
	"github.com/stockline/stockline/internal/models"
)

type fakeModel struct {
	mu       sync.Mutex
	reply    *llm.Reply
	err      error
	requests []llm.Request
}

func (f *fakeModel) Complete(_ context.Context, req llm.Request) (*llm.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func (f *fakeModel) Provider() string { return "fake" }

type fakeExecutor struct {
	mu     sync.Mutex
	rows   []models.Row
	err    error
	calls  int
	scopes []models.QueryScope
	sql    []string
}

func (f *fakeExecutor) ExecuteReadOnly(_ context.Context, scope models.QueryScope, sql string) ([]models.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.scopes = append(f.scopes, scope)
	f.sql = append(f.sql, sql)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeAuditor struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	err     error
}

func (f *fakeAuditor) RecordQuery(_ context.Context, entry models.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeCustomers struct {
	profile *models.CustomerProfile
	err     error
	lookups int
}

func (f *fakeCustomers) FindProfile(_ context.Context, _, _, _ string) (*models.CustomerProfile, error) {
	f.lookups++
	return f.profile, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func toolReply(args string) *llm.Reply {
	return &llm.Reply{
		ToolCalls: []llm.ToolCall{{Name: "query_database", Arguments: args}},
		Usage:     models.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
	}
}
