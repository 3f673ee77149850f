package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/stockline/stockline/internal/models"
)

// Gemini talks to the Google Gemini API.
type Gemini struct {
	client *genai.Client
	cfg    Config
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{client: client, cfg: cfg}, nil
}

// Provider implements Model.
func (g *Gemini) Provider() string { return ProviderGemini }

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Complete implements Model.
func (g *Gemini) Complete(ctx context.Context, req Request) (*Reply, error) {
	ctx, cancel := withTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	m := g.client.GenerativeModel(g.cfg.Model)
	m.SetTemperature(0)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.System)},
	}
	if len(req.Tools) > 0 {
		m.Tools = geminiTools(req.Tools)
	}

	resp, err := m.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return nil, modelErr(ProviderGemini, err)
	}

	return geminiReply(resp)
}

func geminiTools(specs []ToolSpec) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(specs))
	for _, s := range specs {
		schema := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(s.Params)),
		}
		for _, p := range s.Params {
			schema.Properties[p.Name] = &genai.Schema{Type: genai.TypeString, Description: p.Description}
			schema.Required = append(schema.Required, p.Name)
		}

		decls = append(decls, &genai.FunctionDeclaration{
			Name:        s.Name,
			Description: s.Description,
			Parameters:  schema,
		})
	}

	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// geminiReply converts the first candidate into a Reply. Function call
// arguments are re-encoded as a JSON object so both providers hand the same
// shape to the caller.
func geminiReply(resp *genai.GenerateContentResponse) (*Reply, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, modelErr(ProviderGemini, errors.New("response contained no candidates"))
	}

	reply := &Reply{}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			call, err := geminiToolCall(p)
			if err != nil {
				return nil, err
			}
			reply.ToolCalls = append(reply.ToolCalls, call)
		case *genai.FunctionCall:
			call, err := geminiToolCall(*p)
			if err != nil {
				return nil, err
			}
			reply.ToolCalls = append(reply.ToolCalls, call)
		}
	}
	reply.Text = text.String()

	if u := resp.UsageMetadata; u != nil {
		reply.Usage = models.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	return reply, nil
}

func geminiToolCall(fc genai.FunctionCall) (ToolCall, error) {
	args, err := json.Marshal(fc.Args)
	if err != nil {
		return ToolCall{}, modelErr(ProviderGemini, fmt.Errorf("encoding function call arguments: %w", err))
	}

	return ToolCall{Name: fc.Name, Arguments: string(args)}, nil
}
