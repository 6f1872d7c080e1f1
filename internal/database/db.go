package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmagar/movieboard/internal/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Keys used in system_config.
const (
	ConfigLastDatasetReload = "last_dataset_reload"
	ConfigDatasetSource     = "dataset_source"
)

// Initialize creates and initializes the database connection
func Initialize(databaseURL string) (*sql.DB, error) {
	dsn := databaseURL + "?_foreign_keys=on"
	if databaseURL != MemoryPath {
		// Ensure the directory exists
		if err := os.MkdirAll(filepath.Dir(databaseURL), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn += "&_busy_timeout=5000&_journal_mode=WAL"
	}

	// Open database connection
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database
	if databaseURL == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logging.Info().Str("path", databaseURL).Msg("database initialized")
	return db, nil
}

// runMigrations executes all embedded migration files in name order
func runMigrations(db *sql.DB) error {
	createMigrationsTable := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT UNIQUE NOT NULL,
		executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executedMigrations, err := getExecutedMigrations(db)
	if err != nil {
		return err
	}

	migrationFiles, err := getMigrationFiles()
	if err != nil {
		return err
	}

	for _, filename := range migrationFiles {
		if executedMigrations[filename] {
			continue
		}

		logging.Debug().Str("migration", filename).Msg("running migration")
		if err := executeMigration(db, filename); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
	}

	return nil
}

// getExecutedMigrations returns a map of executed migrations
func getExecutedMigrations(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query("SELECT filename FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	executed := make(map[string]bool)
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, err
		}
		executed[filename] = true
	}

	return executed, rows.Err()
}

// getMigrationFiles returns sorted list of migration files
func getMigrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

// executeMigration runs one migration file and records it in a single transaction
func executeMigration(db *sql.DB, filename string) error {
	content, err := migrationsFS.ReadFile("migrations/" + filename)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(string(content)) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement '%s': %w", stmt, err)
		}
	}

	if _, err := tx.Exec("INSERT INTO migrations (filename) VALUES (?)", filename); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}

// splitStatements splits a migration on semicolons and drops comment lines
func splitStatements(content string) []string {
	var statements []string
	for _, stmt := range strings.Split(content, ";") {
		var cleanLines []string
		for _, line := range strings.Split(stmt, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "--") {
				cleanLines = append(cleanLines, line)
			}
		}
		if len(cleanLines) > 0 {
			statements = append(statements, strings.Join(cleanLines, "\n"))
		}
	}
	return statements
}

// ErrUserExists is returned when the username or email is already taken
var ErrUserExists = errors.New("user already exists")

// CreateUser stores a user with a bcrypt password hash and returns its ID
func CreateUser(db *sql.DB, username, email, password, role string) (int64, error) {
	var existingID int64
	err := db.QueryRow("SELECT id FROM users WHERE username = ? OR email = ?", username, email).Scan(&existingID)
	if err == nil {
		return 0, ErrUserExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO users (username, email, password_hash, role, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, true, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`, username, email, string(hash), role)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return result.LastInsertId()
}

// EnsureAdmin creates the admin account when no user with that name exists
func EnsureAdmin(db *sql.DB, username, password string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count); err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := CreateUser(db, username, username+"@localhost", password, "admin"); err != nil {
		return err
	}
	logging.Info().Str("username", username).Msg("seeded admin user")
	return nil
}

// CheckPassword compares a plaintext password with a stored bcrypt hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GetConfigValue reads a system_config value; ok is false when the key is unset
func GetConfigValue(db *sql.DB, key string) (value string, ok bool, err error) {
	err = db.QueryRow("SELECT value FROM system_config WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetConfigValue upserts a system_config value
func SetConfigValue(db *sql.DB, key, value, description string) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO system_config (key, value, description, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`, key, value, description)
	return err
}
