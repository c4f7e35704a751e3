package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_SQLiteCreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "portal.db")

	database, err := Init("sqlite", path+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	defer Close(database)

	assert.FileExists(t, path)
}

func TestRunMigrations_CreatesRecordsTable(t *testing.T) {
	database, err := Init("sqlite", filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	defer Close(database)

	require.NoError(t, RunMigrations(database.DB, "sqlite"))

	var count int
	err = database.Get(&count, `SELECT COUNT(*) FROM records`)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, MigrateDown(database.DB, "sqlite"))
	err = database.Get(&count, `SELECT COUNT(*) FROM records`)
	assert.Error(t, err)
}

func TestGetDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", getDialect("sqlite"))
	assert.Equal(t, "postgres", getDialect("pgx"))
	assert.Equal(t, "clickhouse", getDialect("clickhouse"))
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, Close(nil))
}
