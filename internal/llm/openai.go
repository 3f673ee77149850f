package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAI talks to any OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	llm *openai.LLM
	cfg Config
}

// NewOpenAI creates an OpenAI provider.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}

	return &OpenAI{llm: client, cfg: cfg}, nil
}

// Provider implements Model.
func (o *OpenAI) Provider() string { return ProviderOpenAI }

// Complete implements Model.
func (o *OpenAI) Complete(ctx context.Context, req Request) (*Reply, error) {
	ctx, cancel := withTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.System),
		llms.TextParts(llms.ChatMessageTypeHuman, req.User),
	}

	callOpts := []llms.CallOption{llms.WithTemperature(0)}
	if len(req.Tools) > 0 {
		callOpts = append(callOpts, llms.WithTools(openAITools(req.Tools)), llms.WithToolChoice("auto"))
	}

	resp, err := o.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, modelErr(ProviderOpenAI, err)
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, modelErr(ProviderOpenAI, errors.New("response contained no choices"))
	}

	choice := resp.Choices[0]
	reply := &Reply{
		Text:  choice.Content,
		Usage: usageFromInfo(choice.GenerationInfo),
	}

	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		reply.ToolCalls = append(reply.ToolCalls, ToolCall{
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}

	return reply, nil
}

func openAITools(specs []ToolSpec) []llms.Tool {
	out := make([]llms.Tool, 0, len(specs))
	for _, s := range specs {
		out = append(out, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        s.Name,
				Description: s.Description,
				Parameters:  jsonSchema(s.Params),
			},
		})
	}

	return out
}

// jsonSchema renders params as a JSON schema object of required strings.
func jsonSchema(params []Param) map[string]any {
	props := make(map[string]any, len(params))
	required := make([]string, 0, len(params))

	for _, p := range params {
		props[p.Name] = map[string]any{"type": "string", "description": p.Description}
		required = append(required, p.Name)
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}
