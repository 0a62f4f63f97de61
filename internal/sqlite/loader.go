package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// column maps a JSONL field to a table column.
type column struct {
	field string
	name  string
}

// jsonlTableMapping maps JSONL files to the tables they are loaded into.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []column
}{
	{propertiesJSONL, "properties", []column{
		{"property_id", "property_id"},
		{"label", "label"},
		{"type_id", "type_id"},
		{"description", "description"},
		{"updated_at", "updated_at"},
	}},
	{subobjectsJSONL, "subobjects", []column{
		{"subject", "subject"},
		{"page", "page"},
		{"subobject_id", "subobject_id"},
		{"created_at", "created_at"},
	}},
	{valuesJSONL, "property_values", []column{
		{"value_id", "value_id"},
		{"subject", "subject"},
		{"page", "page"},
		{"subobject", "subobject_id"},
		{"property_id", "property_id"},
		{"value", "value"},
		{"created_at", "created_at"},
	}},
}

// loadAllJSONL reads each JSONL file in dataDir into its table in one
// transaction. Malformed lines, records missing required fields, and
// duplicate keys are skipped; unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	total := 0
	for _, m := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, m.file))
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", m.file, err)
		}
		if len(records) == 0 {
			continue
		}
		n, err := insertRecords(tx, m.table, m.columns, records)
		if err != nil {
			return 0, fmt.Errorf("loading %s into %s: %w", m.file, m.table, err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return total, nil
}

// insertRecords inserts JSONL records into table and returns how many were
// accepted.
func insertRecords(tx *sql.Tx, table string, columns []column, records []json.RawMessage) (int, error) {
	names := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
		placeholders[i] = "?"
	}
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "),
	))
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	n := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		args := make([]any, len(columns))
		for i, c := range columns {
			switch v := obj[c.field].(type) {
			case map[string]any, []any:
				b, err := json.Marshal(v)
				if err != nil {
					continue
				}
				args[i] = string(b)
			default:
				args[i] = v
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			// NOT NULL or primary key violation.
			continue
		}
		n++
	}
	return n, nil
}
