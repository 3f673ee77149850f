// Package llm is the tool-calling client for the language model.
//
// A Model makes exactly one upstream request per Complete call and never
// retries. Every failure, including a reply with no choices, wraps
// models.ErrModel.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/stockline/stockline/internal/models"
)

// Param is a required string parameter of a tool.
type Param struct {
	Name        string
	Description string
}

// ToolSpec describes a function the model may ask to call.
type ToolSpec struct {
	Name        string
	Description string
	Params      []Param
}

// Request is one model turn: a system prompt, the user's message, and the
// tools on offer. With no tools the model can only answer in text.
type Request struct {
	System string
	User   string
	Tools  []ToolSpec
}

// ToolCall is a function call requested by the model. Arguments is the raw,
// untrusted JSON object the model produced.
type ToolCall struct {
	Name      string
	Arguments string
}

// Reply is the model's answer.
type Reply struct {
	Text      string
	ToolCalls []ToolCall
	Usage     models.Usage
}

// Model is a tool-calling language model.
type Model interface {
	Complete(ctx context.Context, req Request) (*Reply, error)
	Provider() string
}

// Config holds provider settings.
type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// New builds the configured provider wrapped with metrics.
func New(ctx context.Context, cfg Config) (Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: language model API key is not set", models.ErrConfiguration)
	}

	var (
		m   Model
		err error
	)

	switch cfg.Provider {
	case ProviderOpenAI, "":
		m, err = NewOpenAI(cfg)
	case ProviderGemini:
		m, err = NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown language model provider %q", models.ErrConfiguration, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return Instrument(m), nil
}

func modelErr(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", models.ErrModel, provider, err)
}

// withTimeout bounds a single upstream call.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, d)
}
