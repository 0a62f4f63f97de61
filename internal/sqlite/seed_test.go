package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/semprops/pkg/types"

	_ "modernc.org/sqlite"
)

// setupTestDB opens a database with the schema and empty JSONL files in a
// temporary directory.
func setupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	dataDir := t.TempDir()
	require.NoError(t, initJSONLFiles(dataDir))

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		_, err := db.Exec(ddl)
		require.NoError(t, err)
	}
	return db, dataDir
}

func TestSeedProperties(t *testing.T) {
	tests := []struct {
		name  string
		defs  []types.PropertyDefinition
		check func(t *testing.T, db *sql.DB, dataDir string, changed int)
	}{
		{
			name: "seeds every definition",
			defs: testProperties,
			check: func(t *testing.T, db *sql.DB, dataDir string, changed int) {
				assert.Equal(t, 2, changed)
				var count int
				require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM properties").Scan(&count))
				assert.Equal(t, 2, count)
			},
		},
		{
			name: "stores label and type",
			defs: testProperties,
			check: func(t *testing.T, db *sql.DB, dataDir string, changed int) {
				var label, typeID string
				require.NoError(t, db.QueryRow(
					"SELECT label, type_id FROM properties WHERE property_id = ?", "_MDAT",
				).Scan(&label, &typeID))
				assert.Equal(t, "Modification date", label)
				assert.Equal(t, types.TypeDate, typeID)
			},
		},
		{
			name: "writes properties.jsonl",
			defs: testProperties,
			check: func(t *testing.T, db *sql.DB, dataDir string, changed int) {
				data, err := os.ReadFile(filepath.Join(dataDir, propertiesJSONL))
				require.NoError(t, err)
				lines := strings.Split(strings.TrimSpace(string(data)), "\n")
				require.Len(t, lines, 2)
				assert.Contains(t, lines[0], `"property_id":"_MDAT"`)
				assert.Contains(t, lines[1], `"property_id":"_SKEY"`)
			},
		},
		{
			name: "no definitions leaves the table empty",
			defs: nil,
			check: func(t *testing.T, db *sql.DB, dataDir string, changed int) {
				assert.Equal(t, 0, changed)
				var count int
				require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM properties").Scan(&count))
				assert.Equal(t, 0, count)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dataDir := setupTestDB(t)
			changed, err := seedProperties(db, dataDir, tt.defs)
			require.NoError(t, err)
			tt.check(t, db, dataDir, changed)
		})
	}
}

func TestSeedPropertiesIsIdempotent(t *testing.T) {
	db, dataDir := setupTestDB(t)

	_, err := seedProperties(db, dataDir, testProperties)
	require.NoError(t, err)
	changed, err := seedProperties(db, dataDir, testProperties)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	updated := []types.PropertyDefinition{{ID: "_MDAT", Label: "Last modified", TypeID: types.TypeDate}}
	changed, err = seedProperties(db, dataDir, updated)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	var label string
	require.NoError(t, db.QueryRow("SELECT label FROM properties WHERE property_id = '_MDAT'").Scan(&label))
	assert.Equal(t, "Last modified", label)
}

func TestBackendSeedsOnAttach(t *testing.T) {
	b := attachBackend(t, t.TempDir(), WithProperties(testProperties))

	props, err := b.Properties()
	require.NoError(t, err)
	assert.Equal(t, []types.PropertyDefinition{
		{ID: "_MDAT", Label: "Modification date", TypeID: types.TypeDate},
		{ID: "_SKEY", TypeID: types.TypeText, Description: "Sort key"},
	}, props)
}
