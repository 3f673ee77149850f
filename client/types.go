package client

import "time"

// Operating modes for ChatRequest.UserType.
const (
	UserTypeInternal = "internal"
	UserTypeCustomer = "customer"
)

// Response types returned in ChatResponse.Type.
const (
	ResponseData         = "data"
	ResponseText         = "text"
	ResponseOrderRequest = "order_request"
	ResponseError        = "error"
)

// ChatRequest is the body of a chat call.
type ChatRequest struct {
	Message     string `json:"message"`
	UserType    string `json:"userType,omitempty"`
	CustomerID  string `json:"customerId,omitempty"`
	Channel     string `json:"channel,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Usage is the model's token accounting for one answer.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the assistant's answer.
type ChatResponse struct {
	Type             string           `json:"type"`
	Content          string           `json:"content"`
	Data             []map[string]any `json:"data,omitempty"`
	QueryDescription string           `json:"query_description,omitempty"`
	RawSQLQuery      string           `json:"raw_sql_query,omitempty"`
	Usage            *Usage           `json:"usage,omitempty"`
}

// AuditEntry represents a single executed query in the audit log.
type AuditEntry struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	TenantID    string    `json:"tenant_id"`
	Action      string    `json:"action"`
	SQLText     string    `json:"sql_text"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuditQueryOptions holds filters for querying the audit log.
type AuditQueryOptions struct {
	TenantID string // super-admin only
	UserID   string
	Action   string
	Since    *time.Time
	Limit    int
	Offset   int
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version"`
	ModelProvider string  `json:"model_provider"`
	Model         string  `json:"model"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	Customers     int     `json:"customers"`
	Products      int     `json:"products"`
	Orders        int     `json:"orders"`
	PendingOrders int     `json:"pending_orders"`
	LowStockItems int     `json:"low_stock_items"`
	Revenue       float64 `json:"revenue"`
}
