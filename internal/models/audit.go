package models

import "time"

// AuditActionDatabaseQuery is the action recorded for every executed query.
const AuditActionDatabaseQuery = "database_query"

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	TenantID    string    `json:"tenant_id"`
	Action      string    `json:"action"`
	SQLText     string    `json:"sql_text"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuditQueryOpts holds filters for querying the audit log.
type AuditQueryOpts struct {
	UserID string
	Action string
	Since  *time.Time
	Limit  int
	Offset int
}
