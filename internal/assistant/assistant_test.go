package assistant_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline/internal/assistant"
	"github.com/stockline/stockline/internal/llm"
	"github.com/stockline/stockline/internal/models"
)

var (
	staffT1    = models.Session{UserID: "u1", TenantID: "T1", Role: models.RoleStaff, DisplayName: "Ada"}
	superAdmin = models.Session{UserID: "root", TenantID: "HQ", Role: models.RoleSuperAdmin}
)

type harness struct {
	model     *fakeModel
	executor  *fakeExecutor
	auditor   *fakeAuditor
	customers *fakeCustomers
	svc       *assistant.Assistant
}

func newHarness(reply *llm.Reply) *harness {
	h := &harness{
		model:     &fakeModel{reply: reply},
		executor:  &fakeExecutor{rows: []models.Row{{"count": float64(4)}}},
		auditor:   &fakeAuditor{},
		customers: &fakeCustomers{},
	}
	h.svc = assistant.New(assistant.Deps{
		Composer:  assistant.NewComposer(assistant.PromptConfig{}),
		Model:     h.model,
		Executor:  h.executor,
		Auditor:   h.auditor,
		Customers: h.customers,
		Log:       quietLogger(),
	})

	return h
}

func staffRequest(msg string) models.ChatRequest {
	return models.ChatRequest{Message: msg, UserType: models.UserTypeInternal}
}

func TestChat_StaffApprovedQuery(t *testing.T) {
	sql := "SELECT count(*) FROM orders WHERE tenant_id = 'T1' AND status='pending'"
	h := newHarness(toolReply(fmt.Sprintf(`{"sql_query":%q,"description":"count pending orders"}`, sql)))

	resp, err := h.svc.Chat(context.Background(), staffT1, staffRequest("how many pending orders do we have"))
	require.NoError(t, err)

	assert.Equal(t, models.ResponseTypeData, resp.Type)
	assert.Equal(t, []models.Row{{"count": float64(4)}}, resp.Data)
	assert.Equal(t, sql, resp.RawSQLQuery)
	assert.Equal(t, "count pending orders", resp.QueryDescription)
	assert.Equal(t, "I've queried the database to count pending orders. Here are the results:", resp.Content)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 120, resp.Usage.TotalTokens)

	require.Equal(t, 1, h.executor.calls)
	assert.Equal(t, models.TenantScope("T1"), h.executor.scopes[0])

	require.Len(t, h.auditor.entries, 1)
	entry := h.auditor.entries[0]
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, "T1", entry.TenantID)
	assert.Equal(t, models.AuditActionDatabaseQuery, entry.Action)
	assert.Equal(t, sql, entry.SQLText)
	assert.Equal(t, "count pending orders", entry.Description)
}

func TestChat_StaffOffersQueryTool(t *testing.T) {
	h := newHarness(&llm.Reply{Text: "Hello Ada"})

	resp, err := h.svc.Chat(context.Background(), staffT1, staffRequest("hi"))
	require.NoError(t, err)

	assert.Equal(t, models.ResponseTypeText, resp.Type)
	assert.Equal(t, "Hello Ada", resp.Content)
	assert.Nil(t, resp.Data)

	require.Len(t, h.model.requests, 1)
	req := h.model.requests[0]
	require.Len(t, req.Tools, 1)
	assert.Equal(t, "query_database", req.Tools[0].Name)
	assert.Equal(t, "hi", req.User)
	assert.Contains(t, req.System, "tenant_id = 'T1'")

	assert.Zero(t, h.executor.calls)
	assert.Empty(t, h.auditor.entries)
}

func TestChat_GateRejectsWithoutExecuting(t *testing.T) {
	queries := []string{
		"SELECT * FROM orders",
		"SELECT * FROM orders WHERE tenant_id = 'T2'",
		"SELECT * FROM orders WHERE tenant_id = 'T10'",
		"SELECT o.* FROM orders o JOIN customers c ON c.tenant_id = o.tenant_id",
		"SELECT * FROM orders WHERE id IN (SELECT order_id FROM order_items WHERE tenant_id = tenant_id)",
		"SELECT * FROM orders /* tenant_id = 'T1' */",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			h := newHarness(toolReply(fmt.Sprintf(`{"sql_query":%q,"description":"list orders"}`, q)))

			resp, err := h.svc.Chat(context.Background(), staffT1, staffRequest("show orders"))
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, models.ErrSecurityViolation)
			assert.True(t, strings.HasPrefix(assistant.UserMessage(err), "Security violation:"))

			assert.Zero(t, h.executor.calls, "executor must not run")
			assert.Empty(t, h.auditor.entries, "nothing audited")
		})
	}
}

func TestChat_SuperAdminUnrestricted(t *testing.T) {
	h := newHarness(toolReply(`{"sql_query":"SELECT tenant_id, count(*) FROM orders GROUP BY tenant_id","description":"count orders per tenant"}`))

	resp, err := h.svc.Chat(context.Background(), superAdmin, staffRequest("orders per tenant"))
	require.NoError(t, err)

	assert.Equal(t, models.ResponseTypeData, resp.Type)
	require.Equal(t, 1, h.executor.calls)
	assert.Equal(t, models.AllTenants(), h.executor.scopes[0])
	require.Len(t, h.auditor.entries, 1)
	assert.Equal(t, "HQ", h.auditor.entries[0].TenantID)
	assert.Contains(t, h.model.requests[0].System, "all tenants")
}

func TestChat_ExecutionFailureSkipsAudit(t *testing.T) {
	h := newHarness(toolReply(`{"sql_query":"SELECT * FROM nope WHERE tenant_id = 'T1'","description":"probe"}`))
	h.executor.err = fmt.Errorf("%w: relation \"nope\" does not exist", models.ErrQueryExecution)

	_, err := h.svc.Chat(context.Background(), staffT1, staffRequest("probe"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrQueryExecution)
	assert.Equal(t, `Query execution failed: relation "nope" does not exist`, assistant.UserMessage(err))

	assert.Equal(t, 1, h.executor.calls)
	assert.Empty(t, h.auditor.entries)
}

func TestChat_AuditFailureStillAnswers(t *testing.T) {
	h := newHarness(toolReply(`{"sql_query":"SELECT * FROM orders WHERE tenant_id='T1'","description":"list orders"}`))
	h.auditor.err = errors.New("disk full")

	resp, err := h.svc.Chat(context.Background(), staffT1, staffRequest("orders"))
	require.NoError(t, err)
	assert.Equal(t, models.ResponseTypeData, resp.Type)
	assert.Len(t, resp.Data, 1)
}

func TestChat_EmptyResultNarration(t *testing.T) {
	h := newHarness(toolReply(`{"sql_query":"SELECT * FROM orders WHERE tenant_id = 'T1' AND status = 'pending'","description":"fetch pending orders"}`))
	h.executor.rows = nil

	resp, err := h.svc.Chat(context.Background(), staffT1, staffRequest("pending orders"))
	require.NoError(t, err)

	assert.Equal(t, "I've queried the database to fetch pending orders. No data available for this query.", resp.Content)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Len(t, h.auditor.entries, 1)
}

func TestChat_ModelErrors(t *testing.T) {
	tests := []struct {
		name  string
		reply *llm.Reply
		err   error
	}{
		{name: "upstream failure", err: fmt.Errorf("%w: openai: timeout", models.ErrModel)},
		{name: "malformed arguments", reply: toolReply(`{"sql_query":42}`)},
		{name: "unknown tool", reply: &llm.Reply{ToolCalls: []llm.ToolCall{{Name: "drop_tables", Arguments: "{}"}}}},
		{name: "empty reply", reply: &llm.Reply{}},
		{name: "empty sql", reply: toolReply(`{"sql_query":"","description":"x"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.reply)
			h.model.err = tt.err

			_, err := h.svc.Chat(context.Background(), staffT1, staffRequest("q"))
			assert.ErrorIs(t, err, models.ErrModel)
			assert.Zero(t, h.executor.calls)
			assert.Empty(t, h.auditor.entries)
		})
	}
}

func TestChat_CustomerNeverOffersOrRunsTools(t *testing.T) {
	reply := toolReply(`{"sql_query":"SELECT * FROM customers WHERE tenant_id = 'T1'","description":"dump"}`)
	reply.Text = "Sure, I can help with that."
	h := newHarness(reply)
	h.customers.profile = &models.CustomerProfile{Name: "Bola"}

	resp, err := h.svc.Chat(context.Background(), staffT1, models.ChatRequest{
		Message:     "What products do you have?",
		UserType:    models.UserTypeCustomer,
		PhoneNumber: "+234800",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ResponseTypeText, resp.Type)
	assert.Equal(t, "Sure, I can help with that.", resp.Content)
	assert.Nil(t, resp.Data)

	require.Len(t, h.model.requests, 1)
	assert.Empty(t, h.model.requests[0].Tools)
	assert.Contains(t, h.model.requests[0].System, "Bola")
	assert.NotContains(t, h.model.requests[0].System, "Available tables")

	assert.Equal(t, 1, h.customers.lookups)
	assert.Zero(t, h.executor.calls)
	assert.Empty(t, h.auditor.entries)
}

func TestChat_CustomerOrderIntent(t *testing.T) {
	h := newHarness(&llm.Reply{Text: "Great, 3 cartons of milk. Shall I confirm?"})

	resp, err := h.svc.Chat(context.Background(), staffT1, models.ChatRequest{
		Message:  "I need 3 cartons of milk",
		UserType: models.UserTypeCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ResponseTypeOrderRequest, resp.Type)
	assert.Zero(t, h.customers.lookups, "no identifiers, no lookup")
}

func TestChat_CustomerProfileLookupFailureIgnored(t *testing.T) {
	h := newHarness(&llm.Reply{Text: "Hello!"})
	h.customers.err = errors.New("db down")

	resp, err := h.svc.Chat(context.Background(), staffT1, models.ChatRequest{
		Message: "hello", UserType: models.UserTypeCustomer, CustomerID: "42",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Content)
	assert.NotContains(t, h.model.requests[0].System, "Known customer details")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", assistant.UserMessage(nil))
	assert.Equal(t, "An internal error occurred.", assistant.UserMessage(errors.New("pq: secret detail")))
	assert.Equal(t, "Security violation: query is not restricted to tenant T1",
		assistant.UserMessage(fmt.Errorf("%w: query is not restricted to tenant T1", models.ErrSecurityViolation)))
}

func TestUserMessage_UpstreamDetailStaysInLog(t *testing.T) {
	upstream := fmt.Errorf("%w: openai: 401 invalid api key sk-live-abc123 for org-42", models.ErrModel)
	msg := assistant.UserMessage(upstream)
	assert.Equal(t, "The language model request failed.", msg)
	assert.NotContains(t, msg, "sk-live")
	assert.NotContains(t, msg, "openai")

	msg = assistant.UserMessage(fmt.Errorf("%w: dial tcp 10.0.0.5:5432", models.ErrIdentityUnavailable))
	assert.NotContains(t, msg, "10.0.0.5")
}
