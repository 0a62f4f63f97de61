package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "empty DataDir is valid at config level",
			config:  Config{Backend: BackendSQLite},
			wantErr: nil,
		},
		{
			name:    "custom db file",
			config:  Config{Backend: BackendSQLite, DBFile: "wiki.db"},
			wantErr: nil,
		},
		{
			name:    "db file with directory is rejected",
			config:  Config{Backend: BackendSQLite, DBFile: "../wiki.db"},
			wantErr: ErrInvalidDBFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestConfigDBFileName(t *testing.T) {
	assert.Equal(t, DefaultDBFile, Config{}.DBFileName())
	assert.Equal(t, "wiki.db", Config{DBFile: "wiki.db"}.DBFileName())
}
