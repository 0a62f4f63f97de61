package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// seedProperties makes the properties table mirror the registry
// definitions. Rows whose label, type, or description changed are replaced;
// properties.jsonl is rewritten only when something changed.
func seedProperties(db *sql.DB, dataDir string, defs []types.PropertyDefinition) (int, error) {
	if len(defs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	changed := 0
	for _, d := range defs {
		var label, typeID, desc sql.NullString
		err := tx.QueryRow(
			"SELECT label, type_id, description FROM properties WHERE property_id = ?", d.ID,
		).Scan(&label, &typeID, &desc)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return 0, fmt.Errorf("reading property %s: %w", d.ID, err)
		case label.String == d.Label && typeID.String == d.TypeID && desc.String == d.Description:
			continue
		}
		_, err = tx.Exec(
			"INSERT OR REPLACE INTO properties (property_id, label, type_id, description, updated_at) VALUES (?, ?, ?, ?, ?)",
			d.ID, d.Label, d.TypeID, d.Description, now,
		)
		if err != nil {
			return 0, fmt.Errorf("seeding property %s: %w", d.ID, err)
		}
		changed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed transaction: %w", err)
	}
	if changed == 0 {
		return 0, nil
	}
	if err := persistProperties(db, dataDir); err != nil {
		return 0, fmt.Errorf("persisting seeded properties: %w", err)
	}
	return changed, nil
}

// persistProperties writes the properties table to properties.jsonl.
func persistProperties(db *sql.DB, dataDir string) error {
	rows, err := db.Query(
		"SELECT property_id, label, type_id, description, updated_at FROM properties ORDER BY property_id",
	)
	if err != nil {
		return fmt.Errorf("querying properties: %w", err)
	}
	defer rows.Close()

	var recs []propertyRecord
	for rows.Next() {
		var r propertyRecord
		var label, typeID, desc sql.NullString
		if err := rows.Scan(&r.PropertyID, &label, &typeID, &desc, &r.UpdatedAt); err != nil {
			return fmt.Errorf("scanning property: %w", err)
		}
		r.Label, r.TypeID, r.Description = label.String, typeID.String, desc.String
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	data, err := marshalAll(recs)
	if err != nil {
		return fmt.Errorf("marshaling properties: %w", err)
	}
	return writeJSONL(filepath.Join(dataDir, propertiesJSONL), data)
}
