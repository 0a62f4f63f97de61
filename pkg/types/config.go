package types

import (
	"errors"
	"path/filepath"
)

// Config selects and parameterizes the storage backend that receives
// resolved property values.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	// DBFile is the name of the query database inside DataDir. Empty means
	// DefaultDBFile.
	DBFile string `json:"db_file,omitempty" yaml:"db_file,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DefaultDBFile is the query database file name used when Config.DBFile is
// empty.
const DefaultDBFile = "semprops.db"

// Config and backend lifecycle errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrInvalidDBFile   = errors.New("db_file must be a bare file name")
	ErrAlreadyAttached = errors.New("backend already attached")
	ErrDetached        = errors.New("backend is detached")
)

var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.DBFile != "" && (filepath.Base(c.DBFile) != c.DBFile || c.DBFile == "." || c.DBFile == "..") {
		return ErrInvalidDBFile
	}
	return nil
}

// DBFileName returns DBFile or DefaultDBFile.
func (c Config) DBFileName() string {
	if c.DBFile == "" {
		return DefaultDBFile
	}
	return c.DBFile
}
