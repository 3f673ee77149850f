package assistant

import (
	"strings"

	"github.com/stockline/stockline/internal/models"
)

// NoDataNotice is appended when a query returns no rows.
const NoDataNotice = "No data available for this query."

// Narrate guarantees a tool-assisted answer carries an explanation.
//
//	text, rows       -> text
//	text, no rows    -> text + notice
//	no text, rows    -> synthesized opener + "Here are the results:"
//	no text, no rows -> synthesized opener + notice
func Narrate(modelText, description string, rows []models.Row) string {
	text := strings.TrimSpace(modelText)

	if text != "" {
		if len(rows) == 0 {
			return modelText + "\n\n" + NoDataNotice
		}

		return modelText
	}

	opener := "I've queried the database to " + strings.TrimSuffix(strings.ToLower(strings.TrimSpace(description)), ".") + "."
	if len(rows) == 0 {
		return opener + " " + NoDataNotice
	}

	return opener + " Here are the results:"
}
