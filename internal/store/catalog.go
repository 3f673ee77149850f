package store

import (
	"context"
	"fmt"

	"github.com/stockline/stockline/internal/models"
)

// CatalogStore reads the queryable table layout from information_schema.
type CatalogStore struct {
	Base
}

// NewCatalogStore creates a CatalogStore.
func NewCatalogStore(base Base) *CatalogStore {
	return &CatalogStore{Base: base}
}

// hiddenTables are never described to the language model.
var hiddenTables = []string{"audit_logs", "users", "tenants", "goose_db_version"}

// LoadCatalog returns the public tables and their columns in ordinal order.
func (s *CatalogStore) LoadCatalog(ctx context.Context) ([]models.TableSchema, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `
		SELECT table_name, column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'public' AND NOT (table_name = ANY($1))
		ORDER BY table_name, ordinal_position`,
		hiddenTables,
	)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var tables []models.TableSchema
	for rows.Next() {
		var table string
		var col models.Column
		if err := rows.Scan(&table, &col.Name, &col.Type); err != nil {
			return nil, fmt.Errorf("scanning catalog column: %w", err)
		}

		if len(tables) == 0 || tables[len(tables)-1].Name != table {
			tables = append(tables, models.TableSchema{Name: table})
		}
		last := &tables[len(tables)-1]
		last.Columns = append(last.Columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog: %w", err)
	}

	return tables, nil
}
