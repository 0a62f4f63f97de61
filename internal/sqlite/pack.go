package sqlite

import (
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// ExportJSONL writes every stored value to path as JSONL, replacing the
// file atomically. It returns the number of values written.
func (b *Backend) ExportJSONL(path string) (int, error) {
	sts, err := b.Statements()
	if err != nil {
		return 0, err
	}
	data, err := marshalAll(sts)
	if err != nil {
		return 0, fmt.Errorf("marshaling values: %w", err)
	}
	if err := writeJSONL(path, data); err != nil {
		return 0, err
	}
	return len(sts), nil
}

// ExportMsgpack writes every stored value to w as a MessagePack array of
// statements. It returns the number of values written.
func (b *Backend) ExportMsgpack(w io.Writer) (int, error) {
	sts, err := b.Statements()
	if err != nil {
		return 0, err
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeArrayLen(len(sts)); err != nil {
		return 0, err
	}
	for i := range sts {
		if err := enc.Encode(&sts[i]); err != nil {
			return i, fmt.Errorf("encoding value %s: %w", sts[i].ID, err)
		}
	}
	return len(sts), nil
}

// ImportMsgpack reads a statement pack written by ExportMsgpack and stores
// its values. Values whose ID is already stored are skipped; values without
// an ID get a new one. It returns the number of values added.
func (b *Backend) ImportMsgpack(r io.Reader) (int, error) {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return 0, fmt.Errorf("reading pack header: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return 0, types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for i := 0; i < n; i++ {
		var st types.Statement
		if err := dec.Decode(&st); err != nil {
			return 0, fmt.Errorf("decoding value %d: %w", i, err)
		}
		if st.Subject == "" || st.PropertyID == "" || st.Value == "" {
			continue
		}
		if st.ID == "" {
			st.ID = generateUUID()
		}
		if st.CreatedAt.IsZero() {
			st.CreatedAt = time.Now().UTC()
		}
		var exists int
		if err := tx.QueryRow("SELECT COUNT(*) FROM property_values WHERE value_id = ?", st.ID).Scan(&exists); err != nil {
			return 0, fmt.Errorf("checking value %s: %w", st.ID, err)
		}
		if exists > 0 {
			continue
		}
		if err := insertStatement(tx, st); err != nil {
			return 0, err
		}
		if st.Subobject != "" {
			_, err := tx.Exec(
				"INSERT OR IGNORE INTO subobjects (subject, page, subobject_id, created_at) VALUES (?, ?, ?, ?)",
				st.Subject, st.Page, st.Subobject, st.CreatedAt.UTC().Format(time.RFC3339Nano),
			)
			if err != nil {
				return 0, fmt.Errorf("inserting subobject %s: %w", st.Subject, err)
			}
		}
		added++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}

	if added > 0 {
		if err := b.persistSubobjectsLocked(); err != nil {
			return added, err
		}
		if err := b.persistValuesLocked(); err != nil {
			return added, err
		}
	}
	b.logger.Info("imported statement pack", "values", n, "added", added)
	return added, nil
}
