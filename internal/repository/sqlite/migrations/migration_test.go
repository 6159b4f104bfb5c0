package migrations

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoad_Embedded(t *testing.T) {
	scripts, err := Load(embedded)
	require.NoError(t, err)
	require.NotEmpty(t, scripts)

	for i, s := range scripts {
		assert.Greater(t, s.Version, 0)
		assert.NotEmpty(t, s.Up, "migration %d has empty up script", s.Version)
		assert.NotEmpty(t, s.Down, "migration %d has empty down script", s.Version)
		if i > 0 {
			assert.Less(t, scripts[i-1].Version, s.Version, "scripts must be sorted")
		}
	}
	assert.Equal(t, "create_kv_store", scripts[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		files    fstest.MapFS
		errorMsg string
	}{
		{
			name:     "missing down script",
			files:    fstest.MapFS{"000001_a.up.sql": {Data: []byte("SELECT 1")}},
			errorMsg: "has no down script",
		},
		{
			name: "duplicate version",
			files: fstest.MapFS{
				"000001_a.up.sql":   {Data: []byte("SELECT 1")},
				"000001_a.down.sql": {Data: []byte("SELECT 1")},
				"000001_b.up.sql":   {Data: []byte("SELECT 1")},
				"000001_b.down.sql": {Data: []byte("SELECT 1")},
			},
			errorMsg: "duplicate migration version 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.files)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestRunMigrations_CreatesKVStore(t *testing.T) {
	db := openMemoryDB(t)

	require.NoError(t, RunMigrations(context.Background(), db))

	_, err := db.Exec(`INSERT INTO kv_store (key, value, updated_at) VALUES ('tasks', '[]', '2024-06-15T00:00:00Z')`)
	require.NoError(t, err)

	var value string
	require.NoError(t, db.QueryRow(`SELECT value FROM kv_store WHERE key = 'tasks'`).Scan(&value))
	assert.Equal(t, "[]", value)
}

func TestRunner_UpIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)
	runner, err := NewRunner(db)
	require.NoError(t, err)

	ran, err := runner.Up(ctx)
	require.NoError(t, err)
	assert.Len(t, ran, len(runner.scripts))

	ran, err = runner.Up(ctx)
	require.NoError(t, err)
	assert.Empty(t, ran)

	version, err := runner.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, runner.Latest(), version)
}

func TestRunner_Down(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)
	runner, err := NewRunner(db)
	require.NoError(t, err)

	_, err = runner.Up(ctx)
	require.NoError(t, err)

	rolledBack, err := runner.Down(ctx)
	require.NoError(t, err)
	assert.Equal(t, runner.Latest(), rolledBack)

	_, err = db.Exec(`SELECT COUNT(*) FROM kv_store`)
	assert.Error(t, err, "kv_store should be dropped")

	// Nothing left to roll back
	rolledBack, err = runner.Down(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, rolledBack)
}

func TestRunner_RefusesNewerSchema(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)
	runner, err := NewRunner(db)
	require.NoError(t, err)
	_, err = runner.Up(ctx)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO schema_versions (version, name, applied_at) VALUES (999, 'future', '2030-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = runner.Up(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database schema version 999 is newer than this build")
}

func TestExtractVersionAndName(t *testing.T) {
	tests := []struct {
		filename string
		version  int
		name     string
	}{
		{"000001_create_kv_store.up.sql", 1, "create_kv_store"},
		{"000012_add_index.up.sql", 12, "add_index"},
		{"notes.up.sql", 0, "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.version, extractVersion(tt.filename))
			assert.Equal(t, tt.name, extractName(tt.filename))
		})
	}
}
