// Package domain defines the canonical service interfaces shared across the
// assistant, the API layer and the stores. Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/stockline/stockline/internal/models"
)

// QueryExecutor runs gate-approved read statements.
type QueryExecutor interface {
	ExecuteReadOnly(ctx context.Context, scope models.QueryScope, sql string) ([]models.Row, error)
}

// Auditor is the minimal interface for recording executed queries.
type Auditor interface {
	RecordQuery(ctx context.Context, entry models.AuditEntry) error
}

// AuditService appends to and reads the audit log. The log is append-only;
// there is deliberately no update or delete operation.
type AuditService interface {
	Auditor
	QueryAudit(ctx context.Context, scope models.QueryScope, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
}

// CustomerDirectory resolves customer profiles for the customer persona.
type CustomerDirectory interface {
	FindProfile(ctx context.Context, tenantID, customerID, phone string) (*models.CustomerProfile, error)
}

// CatalogSource lists the tables the assistant may query.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) ([]models.TableSchema, error)
}

// ChatService answers one chat message for an authenticated session.
type ChatService interface {
	Chat(ctx context.Context, sess models.Session, req models.ChatRequest) (*models.ChatResponse, error)
}
