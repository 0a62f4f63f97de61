package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

const valueColumns = "value_id, subject, page, subobject_id, property_id, value, created_at"

// AddValue stores one value for subject. Empty values are not stored.
func (b *Backend) AddValue(subject types.Subject, propertyID, value string) error {
	if propertyID == "" {
		return types.ErrEmptyProperty
	}
	if value == "" {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrDetached
	}

	if err := insertStatement(b.db, newStatement(subject, propertyID, value)); err != nil {
		return err
	}
	return b.persistValuesLocked()
}

// AddSubobject stores a subobject and its values, replacing any values the
// subobject had before.
func (b *Backend) AddSubobject(so types.Subobject) error {
	if so.ID == "" {
		return fmt.Errorf("subobject of %s has no ID", so.Page.PrefixedText())
	}
	subject := so.Subject()

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning subobject transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM property_values WHERE subject = ?", subject.String()); err != nil {
		return fmt.Errorf("clearing subobject values: %w", err)
	}
	_, err = tx.Exec(
		"INSERT OR IGNORE INTO subobjects (subject, page, subobject_id, created_at) VALUES (?, ?, ?, ?)",
		subject.String(), so.Page.DBKey(), so.ID, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting subobject: %w", err)
	}
	n := 0
	for _, e := range so.Assignments {
		if e.PropertyID == "" {
			return fmt.Errorf("subobject %s, property %q: %w", subject, e.Property, types.ErrPropertyNotFound)
		}
		for _, v := range e.Values {
			if v == "" {
				continue
			}
			if err := insertStatement(tx, newStatement(subject, e.PropertyID, v)); err != nil {
				return err
			}
			n++
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing subobject: %w", err)
	}

	if err := b.persistSubobjectsLocked(); err != nil {
		return err
	}
	if err := b.persistValuesLocked(); err != nil {
		return err
	}
	b.logger.Debug("subobject stored", "subject", subject.String(), "values", n)
	return nil
}

// Values returns the values stored for subject in insertion order.
func (b *Backend) Values(subject types.Subject) ([]types.Statement, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return queryStatements(b.db,
		"SELECT "+valueColumns+" FROM property_values WHERE subject = ? ORDER BY value_id",
		subject.String())
}

// Statements returns every stored value in insertion order.
func (b *Backend) Statements() ([]types.Statement, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return queryStatements(b.db, "SELECT "+valueColumns+" FROM property_values ORDER BY value_id")
}

// Subjects returns the page itself, if it has values, followed by its
// subobjects sorted by ID.
func (b *Backend) Subjects(page types.Page) ([]types.Subject, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.Query(`
SELECT COALESCE(subobject_id, '') AS sub FROM property_values WHERE page = ?
UNION
SELECT subobject_id FROM subobjects WHERE page = ?
ORDER BY sub`, page.DBKey(), page.DBKey())
	if err != nil {
		return nil, fmt.Errorf("querying subjects: %w", err)
	}
	defer rows.Close()

	var out []types.Subject
	for rows.Next() {
		var sub string
		if err := rows.Scan(&sub); err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		out = append(out, types.Subject{Page: page, Subobject: sub})
	}
	return out, rows.Err()
}

// DeleteSubject removes all values of subject, and the subobject row when
// subject is a subobject. It returns the number of values removed.
func (b *Backend) DeleteSubject(subject types.Subject) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return 0, types.ErrDetached
	}

	res, err := b.db.Exec("DELETE FROM property_values WHERE subject = ?", subject.String())
	if err != nil {
		return 0, fmt.Errorf("deleting values: %w", err)
	}
	n, _ := res.RowsAffected()
	if subject.Subobject != "" {
		if _, err := b.db.Exec("DELETE FROM subobjects WHERE subject = ?", subject.String()); err != nil {
			return 0, fmt.Errorf("deleting subobject: %w", err)
		}
		if err := b.persistSubobjectsLocked(); err != nil {
			return 0, err
		}
	}
	if err := b.persistValuesLocked(); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Properties returns the predefined property rows.
func (b *Backend) Properties() ([]types.PropertyDefinition, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.Query("SELECT property_id, label, type_id, description FROM properties ORDER BY property_id")
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer rows.Close()

	var out []types.PropertyDefinition
	for rows.Next() {
		var d types.PropertyDefinition
		var label, typeID, desc sql.NullString
		if err := rows.Scan(&d.ID, &label, &typeID, &desc); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		d.Label, d.TypeID, d.Description = label.String, typeID.String, desc.String
		out = append(out, d)
	}
	return out, rows.Err()
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func newStatement(subject types.Subject, propertyID, value string) types.Statement {
	st := types.NewStatement(subject, propertyID, value)
	st.ID = generateUUID()
	st.CreatedAt = time.Now().UTC()
	return st
}

func insertStatement(ex execer, st types.Statement) error {
	var sub any
	if st.Subobject != "" {
		sub = st.Subobject
	}
	_, err := ex.Exec(
		"INSERT INTO property_values ("+valueColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		st.ID, st.Subject, st.Page, sub, st.PropertyID, st.Value, st.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting value for %s: %w", st.Subject, err)
	}
	return nil
}

func queryStatements(q queryer, query string, args ...any) ([]types.Statement, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying values: %w", err)
	}
	defer rows.Close()

	var out []types.Statement
	for rows.Next() {
		var (
			st        types.Statement
			sub       sql.NullString
			createdAt string
		)
		if err := rows.Scan(&st.ID, &st.Subject, &st.Page, &sub, &st.PropertyID, &st.Value, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		st.Subobject = sub.String
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			st.CreatedAt = t
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// persistValuesLocked writes property_values to values.jsonl. The caller
// holds b.mu.
func (b *Backend) persistValuesLocked() error {
	sts, err := queryStatements(b.db, "SELECT "+valueColumns+" FROM property_values ORDER BY value_id")
	if err != nil {
		return err
	}
	data, err := marshalAll(sts)
	if err != nil {
		return fmt.Errorf("marshaling values: %w", err)
	}
	return writeJSONL(filepath.Join(b.dataDir, valuesJSONL), data)
}

// persistSubobjectsLocked writes subobjects to subobjects.jsonl. The caller
// holds b.mu.
func (b *Backend) persistSubobjectsLocked() error {
	rows, err := b.db.Query("SELECT subject, page, subobject_id, created_at FROM subobjects ORDER BY subject")
	if err != nil {
		return fmt.Errorf("querying subobjects: %w", err)
	}
	defer rows.Close()

	var recs []subobjectRecord
	for rows.Next() {
		var r subobjectRecord
		if err := rows.Scan(&r.Subject, &r.Page, &r.SubobjectID, &r.CreatedAt); err != nil {
			return fmt.Errorf("scanning subobject: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	data, err := marshalAll(recs)
	if err != nil {
		return fmt.Errorf("marshaling subobjects: %w", err)
	}
	return writeJSONL(filepath.Join(b.dataDir, subobjectsJSONL), data)
}
