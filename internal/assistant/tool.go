package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stockline/stockline/internal/llm"
	"github.com/stockline/stockline/internal/models"
)

// QueryToolName is the name of the database tool offered to staff sessions.
const QueryToolName = "query_database"

// QueryTool describes the database tool.
var QueryTool = llm.ToolSpec{
	Name:        QueryToolName,
	Description: "Run one read-only SQL SELECT query against the distribution database and return the rows.",
	Params: []llm.Param{
		{Name: "sql_query", Description: "A single PostgreSQL SELECT statement."},
		{Name: "description", Description: "A short phrase describing what the query fetches, e.g. \"fetch pending orders\"."},
	},
}

// ParseQueryInvocation validates untrusted tool arguments. Both fields must
// be present, be JSON strings and be non-blank.
func ParseQueryInvocation(arguments string) (models.ToolInvocation, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(arguments), &fields); err != nil {
		return models.ToolInvocation{}, fmt.Errorf("%w: tool arguments are not a JSON object: %w", models.ErrModel, err)
	}

	sql, err := stringField(fields, "sql_query")
	if err != nil {
		return models.ToolInvocation{}, err
	}

	desc, err := stringField(fields, "description")
	if err != nil {
		return models.ToolInvocation{}, err
	}

	return models.ToolInvocation{SQLQuery: sql, Description: desc}, nil
}

func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%w: tool arguments missing %q", models.ErrModel, name)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", fmt.Errorf("%w: tool argument %q must be a string", models.ErrModel, name)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: tool argument %q: %w", models.ErrModel, name, err)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: tool argument %q is empty", models.ErrModel, name)
	}

	return s, nil
}
