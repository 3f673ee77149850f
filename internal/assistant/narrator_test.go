package assistant_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockline/stockline/internal/assistant"
	"github.com/stockline/stockline/internal/models"
)

func TestNarrate(t *testing.T) {
	rows := []models.Row{{"count": 3}}

	tests := []struct {
		name        string
		text        string
		description string
		rows        []models.Row
		want        string
	}{
		{
			name: "text and rows",
			text: "You have 3 pending orders.", description: "count pending orders", rows: rows,
			want: "You have 3 pending orders.",
		},
		{
			name: "text without rows",
			text: "Here is what I found.", description: "count pending orders", rows: nil,
			want: "Here is what I found.\n\n" + assistant.NoDataNotice,
		},
		{
			name: "no text with rows",
			text: "", description: "Fetch Pending Orders", rows: rows,
			want: "I've queried the database to fetch pending orders. Here are the results:",
		},
		{
			name: "no text without rows",
			text: "   ", description: "fetch pending orders", rows: []models.Row{},
			want: "I've queried the database to fetch pending orders. " + assistant.NoDataNotice,
		},
		{
			name: "trailing period not doubled",
			text: "", description: "list customers.", rows: rows,
			want: "I've queried the database to list customers. Here are the results:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assistant.Narrate(tt.text, tt.description, tt.rows))
		})
	}
}

func TestNarrate_PendingOrdersExample(t *testing.T) {
	got := assistant.Narrate("", "fetch pending orders", nil)

	assert.True(t, strings.HasPrefix(got, "I've queried the database to fetch pending orders."))
	assert.True(t, strings.HasSuffix(got, "No data available for this query."))
}
