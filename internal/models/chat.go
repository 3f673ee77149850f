package models

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// UserType selects the assistant's operating mode.
type UserType string

// Operating modes.
const (
	UserTypeInternal UserType = "internal"
	UserTypeCustomer UserType = "customer"
)

const maxMessageLength = 4000

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message     string   `json:"message"`
	UserType    UserType `json:"userType"`
	CustomerID  string   `json:"customerId,omitempty"`
	Channel     string   `json:"channel,omitempty"`
	PhoneNumber string   `json:"phoneNumber,omitempty"`
}

// Normalize trims the message and fills in the default operating mode.
func (r *ChatRequest) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
	if r.UserType == "" {
		r.UserType = UserTypeInternal
	}
}

// Validate checks required fields and limits.
func (r *ChatRequest) Validate() error {
	if r.Message == "" {
		return ErrMissingMessage
	}
	if utf8.RuneCountInString(r.Message) > maxMessageLength {
		return ErrFieldTooLong("message", maxMessageLength)
	}
	if r.UserType != UserTypeInternal && r.UserType != UserTypeCustomer {
		return ErrInvalidUserType
	}

	return nil
}

// ToolInvocation is the query tool payload produced by the language model.
// It is untrusted until validated.
type ToolInvocation struct {
	SQLQuery    string `json:"sql_query"`
	Description string `json:"description"`
}

// Row is a single result row keyed by column name.
type Row = map[string]any

// Usage is token accounting reported by the language model.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CustomerProfile holds the known fields of a customer for the persona prompt.
type CustomerProfile struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// Response types for ChatResponse.Type.
const (
	ResponseTypeData         = "data"
	ResponseTypeText         = "text"
	ResponseTypeOrderRequest = "order_request"
	ResponseTypeError        = "error"
)

// ChatResponse is the body returned by POST /api/v1/chat.
type ChatResponse struct {
	Type             string `json:"type"`
	Content          string `json:"content"`
	Data             []Row  `json:"data,omitempty"`
	QueryDescription string `json:"query_description,omitempty"`
	RawSQLQuery      string `json:"raw_sql_query,omitempty"`
	Usage            *Usage `json:"usage,omitempty"`
}

// MarshalJSON always emits the data array for data responses, even when the
// query returned no rows.
func (r ChatResponse) MarshalJSON() ([]byte, error) {
	type plain ChatResponse
	if r.Type != ResponseTypeData {
		return json.Marshal(plain(r))
	}

	rows := r.Data
	if rows == nil {
		rows = []Row{}
	}

	return json.Marshal(struct {
		plain
		Data []Row `json:"data"`
	}{plain(r), rows})
}
