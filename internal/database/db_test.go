package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmagar/movieboard/internal/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Initialize(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitialize_CreatesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"migrations", "users", "api_logs", "system_config", "dataset_loads", "movies"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	files, err := getMigrationFiles()
	require.NoError(t, err)
	assert.Equal(t, len(files), applied)
}

func TestInitialize_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "movieboard.db")

	db, err := Initialize(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Initialize(path)
	require.NoError(t, err)
	defer db.Close()

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	assert.Equal(t, 2, applied)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements(`
-- leading comment
CREATE TABLE a (id INTEGER);

-- only a comment;
CREATE TABLE b (
    id INTEGER -- trailing comments stay
);
`)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (id INTEGER)", stmts[0])
	assert.Contains(t, stmts[1], "CREATE TABLE b")
}

func TestUsers(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, EnsureAdmin(db, "admin", "admin123"))
	// Second call is a no-op
	require.NoError(t, EnsureAdmin(db, "admin", "other"))

	var hash, role string
	require.NoError(t, db.QueryRow("SELECT password_hash, role FROM users WHERE username = 'admin'").Scan(&hash, &role))
	assert.Equal(t, "admin", role)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "other"))

	id, err := CreateUser(db, "viewer", "viewer@example.com", "secret", "user")
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = CreateUser(db, "viewer", "another@example.com", "secret", "user")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestConfigValues(t *testing.T) {
	db := setupTestDB(t)

	_, ok, err := GetConfigValue(db, ConfigLastDatasetReload)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetConfigValue(db, ConfigLastDatasetReload, "2024-01-01T00:00:00Z", "last reload"))
	require.NoError(t, SetConfigValue(db, ConfigLastDatasetReload, "2024-02-01T00:00:00Z", "last reload"))

	value, ok, err := GetConfigValue(db, ConfigLastDatasetReload)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2024-02-01T00:00:00Z", value)
}

func TestDatasetLoads(t *testing.T) {
	db := setupTestDB(t)

	_, err := RecordDatasetLoad(db, models.DatasetLoad{
		Source: "a.csv", Trigger: "startup", RowsRead: 10, RowsKept: 9, RowsSkipped: 1, DurationMS: 4, Status: "completed",
	})
	require.NoError(t, err)
	_, err = RecordDatasetLoad(db, models.DatasetLoad{
		Source: "a.csv", Trigger: "api", Status: "failed", Error: "boom",
	})
	require.NoError(t, err)

	loads, err := RecentDatasetLoads(db, 10)
	require.NoError(t, err)
	require.Len(t, loads, 2)
	assert.Equal(t, "failed", loads[0].Status)
	assert.Equal(t, "boom", loads[0].Error)
	assert.Equal(t, "startup", loads[1].Trigger)
	assert.Equal(t, 9, loads[1].RowsKept)
	assert.False(t, loads[1].CreatedAt.IsZero())

	limited, err := RecentDatasetLoads(db, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestInsertAPILog(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, InsertAPILog(db, APILog{
		Method: "GET", Path: "/health", StatusCode: 200, ResponseTime: 3, RequestID: "abc",
	}))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM api_logs").Scan(&count))
	assert.Equal(t, 1, count)
}
