package migrations

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRun_FreshDatabase(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Run(db))

	cols, err := tableColumns(db, "mappings")
	require.NoError(t, err)
	for _, c := range []string{"source_path", "strm_path", "seafile_url", "last_updated", "metadata_status", "metadata_info"} {
		assert.True(t, cols[c], "missing column %s", c)
	}

	var idx string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_strm_path'`).Scan(&idx)
	require.NoError(t, err)

	cacheCols, err := tableColumns(db, "metadata_cache")
	require.NoError(t, err)
	assert.True(t, cacheCols["expires_at"])

	version, err := Version(db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
}

func TestRun_Idempotent(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, Run(db))
	require.NoError(t, Run(db))
}

func TestRun_AdoptsLegacyTable(t *testing.T) {
	db := openMemory(t)
	_, err := db.Exec(`CREATE TABLE mappings (
		source_path TEXT PRIMARY KEY,
		strm_path TEXT NOT NULL,
		seafile_url TEXT,
		last_updated TIMESTAMP
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO mappings VALUES ('/src/a.mkv', '/lib/a.strm', 'https://x/f/1/', '2024-01-01 12:00:00')`)
	require.NoError(t, err)

	require.NoError(t, Run(db))

	cols, err := tableColumns(db, "mappings")
	require.NoError(t, err)
	assert.True(t, cols["metadata_status"])
	assert.True(t, cols["metadata_info"])

	var strm string
	require.NoError(t, db.QueryRow(`SELECT strm_path FROM mappings WHERE source_path = '/src/a.mkv'`).Scan(&strm))
	assert.Equal(t, "/lib/a.strm", strm)
}
