package api

import (
	"context"

	"github.com/stockline/stockline/internal/domain"
	"github.com/stockline/stockline/internal/models"
)

// ChatService answers chat messages. Implemented by assistant.Assistant.
type ChatService = domain.ChatService

// AuditRepository defines the audit log reads used by AuditHandler.
type AuditRepository interface {
	QueryAudit(ctx context.Context, scope models.QueryScope, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
}

// StatsRepository defines the tenant dashboard query used by StatsHandler.
type StatsRepository interface {
	TenantStats(ctx context.Context, tenantID string) (*models.TenantStats, error)
}

// Pinger reports database reachability for the health endpoints.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}
