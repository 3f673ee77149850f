// Package assistant answers chat messages for staff and customers.
//
// Staff sessions may receive a single database tool. Any query the model
// proposes passes the session's Scope before it reaches the executor, and an
// audit entry is written only after the query ran successfully. Customer
// sessions never see the tool and tool calls in that mode are ignored.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/domain"
	"github.com/stockline/stockline/internal/httputil"
	"github.com/stockline/stockline/internal/llm"
	"github.com/stockline/stockline/internal/metrics"
	"github.com/stockline/stockline/internal/models"
)

// Compile-time check: *Assistant must satisfy domain.ChatService.
var _ domain.ChatService = (*Assistant)(nil)

// Deps are the collaborators of an Assistant. Customers and Intent are
// optional.
type Deps struct {
	Composer  *Composer
	Model     llm.Model
	Executor  domain.QueryExecutor
	Auditor   domain.Auditor
	Customers domain.CustomerDirectory
	Intent    OrderIntentDetector
	Log       *logrus.Logger
}

// Assistant orchestrates one chat turn.
type Assistant struct {
	composer  *Composer
	model     llm.Model
	executor  domain.QueryExecutor
	auditor   domain.Auditor
	customers domain.CustomerDirectory
	intent    OrderIntentDetector
	log       *logrus.Logger
}

// New creates an Assistant.
func New(d Deps) *Assistant {
	if d.Composer == nil {
		d.Composer = NewComposer(PromptConfig{})
	}
	if d.Intent == nil {
		d.Intent = KeywordIntent{}
	}

	return &Assistant{
		composer:  d.Composer,
		model:     d.Model,
		executor:  d.Executor,
		auditor:   d.Auditor,
		customers: d.Customers,
		intent:    d.Intent,
		log:       d.Log,
	}
}

// Chat answers req for sess. Errors wrap one of the models error kinds.
func (a *Assistant) Chat(ctx context.Context, sess models.Session, req models.ChatRequest) (*models.ChatResponse, error) {
	if req.UserType == models.UserTypeCustomer {
		return a.customerChat(ctx, sess, req)
	}

	return a.staffChat(ctx, sess, req)
}

func (a *Assistant) staffChat(ctx context.Context, sess models.Session, req models.ChatRequest) (*models.ChatResponse, error) {
	scope := ScopeFor(sess)

	reply, err := a.model.Complete(ctx, llm.Request{
		System: a.composer.Staff(sess, scope),
		User:   req.Message,
		Tools:  []llm.ToolSpec{QueryTool},
	})
	if err != nil {
		return nil, err
	}

	usage := reply.Usage

	call, ok := queryCall(reply.ToolCalls)
	if !ok {
		if len(reply.ToolCalls) > 0 {
			return nil, fmt.Errorf("%w: unknown tool %q", models.ErrModel, reply.ToolCalls[0].Name)
		}
		if strings.TrimSpace(reply.Text) == "" {
			return nil, fmt.Errorf("%w: empty reply", models.ErrModel)
		}

		return &models.ChatResponse{Type: models.ResponseTypeText, Content: reply.Text, Usage: &usage}, nil
	}

	inv, err := ParseQueryInvocation(call.Arguments)
	if err != nil {
		return nil, err
	}

	if err := a.authorize(ctx, sess, scope, inv); err != nil {
		return nil, err
	}

	rows, err := a.executor.ExecuteReadOnly(ctx, scope.StoreScope(), inv.SQLQuery)
	if err != nil {
		return nil, err
	}

	a.recordAudit(ctx, sess, inv)

	if rows == nil {
		rows = []models.Row{}
	}

	return &models.ChatResponse{
		Type:             models.ResponseTypeData,
		Content:          Narrate(reply.Text, inv.Description, rows),
		Data:             rows,
		QueryDescription: inv.Description,
		RawSQLQuery:      inv.SQLQuery,
		Usage:            &usage,
	}, nil
}

// authorize runs the gate and makes rejections loud.
func (a *Assistant) authorize(ctx context.Context, sess models.Session, scope Scope, inv models.ToolInvocation) error {
	err := scope.Authorize(inv.SQLQuery)

	switch {
	case err == nil:
		metrics.GateDecisions.WithLabelValues(scope.Name(), "approved").Inc()
	case errors.Is(err, models.ErrSecurityViolation):
		metrics.GateDecisions.WithLabelValues(scope.Name(), "rejected").Inc()
		a.log.WithFields(logrus.Fields{
			"request_id":  httputil.RequestIDFrom(ctx),
			"tenant_id":   sess.TenantID,
			"user_id":     sess.UserID,
			"scope":       scope.Name(),
			"sql":         inv.SQLQuery,
			"description": inv.Description,
		}).Warn("security gate rejected query")
	}

	return err
}

// recordAudit writes the audit entry. A failed write is logged and counted
// but never fails the answer.
func (a *Assistant) recordAudit(ctx context.Context, sess models.Session, inv models.ToolInvocation) {
	if a.auditor == nil {
		return
	}

	err := a.auditor.RecordQuery(ctx, models.AuditEntry{
		UserID:      sess.UserID,
		TenantID:    sess.TenantID,
		Action:      models.AuditActionDatabaseQuery,
		SQLText:     inv.SQLQuery,
		Description: inv.Description,
	})
	if err != nil {
		metrics.AuditWriteFailures.Inc()
		a.log.WithFields(logrus.Fields{
			"request_id": httputil.RequestIDFrom(ctx),
			"tenant_id":  sess.TenantID,
			"user_id":    sess.UserID,
		}).WithError(err).Error("audit write failed")
	}
}

func (a *Assistant) customerChat(ctx context.Context, sess models.Session, req models.ChatRequest) (*models.ChatResponse, error) {
	profile := a.customerProfile(ctx, sess, req)

	reply, err := a.model.Complete(ctx, llm.Request{
		System: a.composer.Customer(profile),
		User:   req.Message,
	})
	if err != nil {
		return nil, err
	}

	if len(reply.ToolCalls) > 0 {
		a.log.WithFields(logrus.Fields{
			"request_id": httputil.RequestIDFrom(ctx),
			"tenant_id":  sess.TenantID,
			"tool":       reply.ToolCalls[0].Name,
		}).Warn("ignoring tool call in customer mode")
	}

	if strings.TrimSpace(reply.Text) == "" {
		return nil, fmt.Errorf("%w: empty reply", models.ErrModel)
	}

	respType := models.ResponseTypeText
	if a.intent.IsOrderRequest(req.Message) {
		respType = models.ResponseTypeOrderRequest
	}

	usage := reply.Usage

	return &models.ChatResponse{Type: respType, Content: reply.Text, Usage: &usage}, nil
}

// customerProfile looks up the customer best-effort; a failed lookup only
// drops the personalisation.
func (a *Assistant) customerProfile(ctx context.Context, sess models.Session, req models.ChatRequest) *models.CustomerProfile {
	if a.customers == nil || (req.CustomerID == "" && req.PhoneNumber == "") {
		return nil
	}

	profile, err := a.customers.FindProfile(ctx, sess.TenantID, req.CustomerID, req.PhoneNumber)
	if err != nil {
		a.log.WithFields(logrus.Fields{
			"request_id": httputil.RequestIDFrom(ctx),
			"tenant_id":  sess.TenantID,
		}).WithError(err).Warn("customer profile lookup failed")

		return nil
	}

	return profile
}

func queryCall(calls []llm.ToolCall) (llm.ToolCall, bool) {
	for _, c := range calls {
		if c.Name == QueryToolName {
			return c, true
		}
	}

	return llm.ToolCall{}, false
}

// UserMessage renders err as the content of a chat error response. Known
// error kinds keep their message, e.g. "Security violation: ...". Upstream
// failures get a fixed text; their detail belongs in the log.
func UserMessage(err error) string {
	switch models.Kind(err) {
	case "":
		return ""
	case "internal":
		return "An internal error occurred."
	case "model":
		return "The language model request failed."
	case "identity_unavailable":
		return "Authentication is temporarily unavailable."
	}

	msg := err.Error()

	return strings.ToUpper(msg[:1]) + msg[1:]
}
