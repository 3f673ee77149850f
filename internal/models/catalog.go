package models

// Column describes one column of a queryable table.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TableSchema describes one table the assistant may query.
type TableSchema struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}
