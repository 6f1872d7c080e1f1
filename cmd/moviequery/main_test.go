package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmagar/movieboard/internal/database"
)

const testCSV = `title,primary_genre,release_date,popularity
Heat,Action,1995-12-15,41.5
Speed,Action,1994-06-10,20
Die Hard,Action,1988-07-15,35
Fargo,Drama,1996-03-08,18.5
Titanic,Drama,1997-12-19,50
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTopCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "top", "-d", path, "--genre", "Action", "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Top 3 Most Popular Movies in Action Genre (1988-1997)")
	assert.Less(t, bytes.Index([]byte(out), []byte("Heat")), bytes.Index([]byte(out), []byte("Die Hard")))
	assert.Contains(t, out, "41.50")

	out, err = run(t, "top", "-d", path, "--genre", "Western")
	require.NoError(t, err)
	assert.Contains(t, out, "No movies found")

	_, err = run(t, "top", "-d", path, "-n", "7")
	assert.Error(t, err)
}

func TestTopCommandWritesChart(t *testing.T) {
	path := writeDataset(t)
	chart := filepath.Join(t.TempDir(), "top.png")

	_, err := run(t, "top", "-d", path, "--chart", chart)
	require.NoError(t, err)

	data, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestTrendCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "trend", "-d", path, "--genre", "Drama", "--from", "1996", "--to", "1997")
	require.NoError(t, err)
	assert.Contains(t, out, "Average Popularity of Drama Movies by Year (1996-1997)")
	assert.Contains(t, out, "18.50")
	assert.Contains(t, out, "50.00")
}

func TestCountsAndGenresCommands(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "counts", "-d", path, "--year", "1995")
	require.NoError(t, err)
	assert.Contains(t, out, "Movies per genre released in 1995")
	assert.Contains(t, out, "Action")
	assert.NotContains(t, out, "Drama")

	out, err = run(t, "genres", "-d", path)
	require.NoError(t, err)
	assert.Equal(t, "Action\nDrama\n", out)
}

func TestImportAndAddUser(t *testing.T) {
	path := writeDataset(t)
	dbPath := filepath.Join(t.TempDir(), "movieboard.db")

	out, err := run(t, "import", "-d", path, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 5 movies")

	out, err = run(t, "adduser", "analyst", "--db", dbPath, "--email", "analyst@example.com", "--password", "correct-horse")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user analyst with role user")

	_, err = run(t, "adduser", "analyst", "--db", dbPath, "--email", "analyst@example.com", "--password", "correct-horse")
	assert.ErrorIs(t, err, database.ErrUserExists)

	_, err = run(t, "adduser", "boss", "--db", dbPath, "--email", "boss@example.com", "--password", "correct-horse", "--role", "owner")
	assert.Error(t, err)

	db, err := database.Initialize(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var movies int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&movies))
	assert.Equal(t, 5, movies)

	var loads int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM dataset_loads WHERE trigger_source = 'cli'").Scan(&loads))
	assert.Equal(t, 1, loads)
}
