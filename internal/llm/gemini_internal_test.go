package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline/internal/models"
)

func TestGeminiTools_DeclaresRequiredStrings(t *testing.T) {
	tools := geminiTools([]ToolSpec{{
		Name:        "query_database",
		Description: "Run a read query",
		Params:      []Param{{Name: "sql_query"}, {Name: "description"}},
	}})

	require.Len(t, tools, 1)
	require.Len(t, tools[0].FunctionDeclarations, 1)

	decl := tools[0].FunctionDeclarations[0]
	assert.Equal(t, "query_database", decl.Name)
	assert.Equal(t, genai.TypeObject, decl.Parameters.Type)
	assert.Equal(t, []string{"sql_query", "description"}, decl.Parameters.Required)
	assert.Equal(t, genai.TypeString, decl.Parameters.Properties["sql_query"].Type)
}

func TestGeminiReply_FunctionCall(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.FunctionCall{Name: "query_database", Args: map[string]any{
					"sql_query":   "SELECT 1 FROM orders WHERE tenant_id = 'T1'",
					"description": "probe",
				}},
			}},
		}},
		UsageMetadata: &genai.UsageMetadata{PromptTokenCount: 10, CandidatesTokenCount: 4, TotalTokenCount: 14},
	}

	reply, err := geminiReply(resp)
	require.NoError(t, err)

	require.Len(t, reply.ToolCalls, 1)
	assert.Equal(t, "query_database", reply.ToolCalls[0].Name)
	assert.JSONEq(t, `{"sql_query":"SELECT 1 FROM orders WHERE tenant_id = 'T1'","description":"probe"}`, reply.ToolCalls[0].Arguments)
	assert.Equal(t, models.Usage{PromptTokens: 10, CompletionTokens: 4, TotalTokens: 14}, reply.Usage)
}

func TestGeminiReply_Text(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello "), genai.Text("there")}},
		}},
	}

	reply, err := geminiReply(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hello there", reply.Text)
	assert.Empty(t, reply.ToolCalls)
}

func TestGeminiReply_NoCandidates(t *testing.T) {
	_, err := geminiReply(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, models.ErrModel)

	_, err = geminiReply(nil)
	assert.ErrorIs(t, err, models.ErrModel)
}

func TestUsageFromInfo(t *testing.T) {
	u := usageFromInfo(map[string]any{"PromptTokens": 3, "CompletionTokens": int64(2), "TotalTokens": float64(5)})
	assert.Equal(t, models.Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5}, u)
	assert.Equal(t, models.Usage{}, usageFromInfo(nil))
}
