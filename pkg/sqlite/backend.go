// Package sqlite provides the public API for the SQLite property store.
// It exposes the factory for creating backends while keeping the
// implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/semprops/internal/sqlite"
	"github.com/mesh-intelligence/semprops/pkg/types"
)

// PropertySource supplies the predefined property definitions seeded into
// the store on attach.
type PropertySource = sqlite.PropertySource

// Option configures a backend.
type Option = sqlite.Option

// WithLogger sets the backend logger. The default is slog.Default().
var WithLogger = sqlite.WithLogger

// WithProperties sets the source of predefined properties.
var WithProperties = sqlite.WithProperties

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	store := sqlite.NewBackend(sqlite.WithProperties(reg))
//	if err := store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
//		return err
//	}
//	defer store.Detach()
func NewBackend(opts ...Option) types.Store {
	return sqlite.NewBackend(opts...)
}
