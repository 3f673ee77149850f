// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/domain"
	"github.com/stockline/stockline/internal/models"
)

// AuditQueryStore is the data-access interface AuditService depends on.
// It reuses domain.AuditService since the method sets are identical, avoiding duplication.
type AuditQueryStore = domain.AuditService

// Compile-time check: *AuditService must satisfy domain.AuditService.
var _ domain.AuditService = (*AuditService)(nil)

// AuditService wraps AuditQueryStore with access logging. The trail is
// append-only, so there is nothing here that removes entries.
type AuditService struct {
	store AuditQueryStore
	log   *logrus.Logger
}

// NewAuditService creates an AuditService.
func NewAuditService(store AuditQueryStore, log *logrus.Logger) *AuditService {
	return &AuditService{store: store, log: log}
}

// RecordQuery appends an audit entry (pass-through to store).
func (s *AuditService) RecordQuery(ctx context.Context, entry models.AuditEntry) error {
	return s.store.RecordQuery(ctx, entry)
}

// QueryAudit returns audit entries matching the given filters. Reads of the
// trail are themselves logged.
func (s *AuditService) QueryAudit(
	ctx context.Context, scope models.QueryScope, opts models.AuditQueryOpts,
) ([]models.AuditEntry, bool, error) {
	entries, hasMore, err := s.store.QueryAudit(ctx, scope, opts)
	if err != nil {
		return nil, false, err
	}

	s.log.WithFields(logrus.Fields{
		"tenant_id": scope.TenantID,
		"user_id":   opts.UserID,
		"action":    opts.Action,
		"returned":  len(entries),
	}).Info("audit.read")

	return entries, hasMore, nil
}
