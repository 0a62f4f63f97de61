// Package sqlite stores resolved property values. JSONL files in the data
// directory are the source of truth and SQLite is the query engine: the
// database is rebuilt from the files on every attach, and every write is
// persisted back to the files before it returns.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/semprops/pkg/types"
)

// PropertySource supplies the predefined property definitions mirrored into
// the properties table. *registry.Registry implements it.
type PropertySource interface {
	Properties() []types.PropertyDefinition
}

// Backend implements types.DataContainer on top of SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB

	properties PropertySource
	logger     *slog.Logger
}

var _ types.Store = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithProperties sets the source of predefined properties seeded on attach.
func WithProperties(src PropertySource) Option {
	return func(b *Backend) {
		b.properties = src
	}
}

// NewBackend creates a detached backend. Call Attach to open it.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach creates the data directory if needed, rebuilds the query database
// from the JSONL files, and seeds predefined properties.
// It returns types.ErrAlreadyAttached if the backend is open.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, config.DBFileName())
	// The database is derived state; start from an empty schema.
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	fail := func(err error) error {
		db.Close()
		return err
	}
	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			return fail(fmt.Errorf("creating schema: %w", err))
		}
	}
	if err := initJSONLFiles(dataDir); err != nil {
		return fail(err)
	}
	loaded, err := loadAllJSONL(db, dataDir)
	if err != nil {
		return fail(fmt.Errorf("load JSONL: %w", err))
	}
	seeded := 0
	if b.properties != nil {
		if seeded, err = seedProperties(db, dataDir, b.properties.Properties()); err != nil {
			return fail(err)
		}
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.attached = true
	b.logger.Debug("backend attached",
		"data_dir", dataDir,
		"records", loaded,
		"seeded_properties", seeded)
	return nil
}

// Detach closes the database. It is idempotent; afterwards every operation
// returns types.ErrDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.logger.Debug("backend detached", "data_dir", b.dataDir)
	return nil
}

// DataDir returns the directory the backend is attached to.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dataDir
}

// generateUUID returns a time-ordered ID for a stored value.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
