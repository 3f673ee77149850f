package llm

import (
	"context"
	"time"

	"github.com/stockline/stockline/internal/metrics"
)

type instrumented struct {
	Model
}

// Instrument records call outcomes, latency and token usage for m.
func Instrument(m Model) Model {
	return &instrumented{Model: m}
}

func (i *instrumented) Complete(ctx context.Context, req Request) (*Reply, error) {
	provider := i.Provider()
	start := time.Now()

	reply, err := i.Model.Complete(ctx, req)
	metrics.ModelDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ModelCalls.WithLabelValues(provider, "error").Inc()
		return nil, err
	}

	outcome := "text"
	if len(reply.ToolCalls) > 0 {
		outcome = "tool_call"
	}
	metrics.ModelCalls.WithLabelValues(provider, outcome).Inc()
	metrics.ModelTokens.WithLabelValues(provider, "prompt").Add(float64(reply.Usage.PromptTokens))
	metrics.ModelTokens.WithLabelValues(provider, "completion").Add(float64(reply.Usage.CompletionTokens))

	return reply, nil
}

// Close forwards to the wrapped model when it holds resources.
func (i *instrumented) Close() error {
	if c, ok := i.Model.(interface{ Close() error }); ok {
		return c.Close()
	}

	return nil
}
