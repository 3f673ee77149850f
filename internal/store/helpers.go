package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/stockline/stockline/internal/models"
)

// maxListLimit is a defense-in-depth cap on limit values for list queries.
const maxListLimit = 1000

// clampLimit applies the default and maximum page sizes.
func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}

	return limit
}

// decodeRows turns a JSON array of row objects into rows. Numbers are kept as
// json.Number so large integers and decimals survive unchanged.
func decodeRows(raw []byte) ([]models.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rows []models.Row
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding result rows: %w", err)
	}

	if rows == nil {
		rows = []models.Row{}
	}

	return rows, nil
}
