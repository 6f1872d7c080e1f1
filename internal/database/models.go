package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmagar/movieboard/internal/models"
)

// User represents a system user
type User struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	Password  string     `json:"-" db:"password_hash"` // Never serialize password
	Role      string     `json:"role" db:"role"`
	Active    bool       `json:"active" db:"active"`
	LastLogin *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// Movie is one row of the movies mirror table
type Movie struct {
	ID           int     `json:"id" db:"id"`
	Position     int     `json:"position" db:"position"`
	Title        string  `json:"title" db:"title"`
	PrimaryGenre string  `json:"primary_genre" db:"primary_genre"`
	ReleaseDate  *string `json:"release_date,omitempty" db:"release_date"`
	ReleaseYear  *int    `json:"release_year,omitempty" db:"release_year"`
	Popularity   float64 `json:"popularity" db:"popularity"`
}

// APILog represents API request logging
type APILog struct {
	ID           int       `json:"id" db:"id"`
	UserID       *int      `json:"user_id,omitempty" db:"user_id"`
	Method       string    `json:"method" db:"method"`
	Path         string    `json:"path" db:"path"`
	StatusCode   int       `json:"status_code" db:"status_code"`
	ResponseTime int64     `json:"response_time_ms" db:"response_time_ms"`
	IPAddress    string    `json:"ip_address" db:"ip_address"`
	UserAgent    string    `json:"user_agent" db:"user_agent"`
	RequestID    string    `json:"request_id" db:"request_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// InsertAPILog records one handled request
func InsertAPILog(db *sql.DB, entry APILog) error {
	_, err := db.Exec(`
		INSERT INTO api_logs (user_id, method, path, status_code, response_time_ms, ip_address, user_agent, request_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.UserID, entry.Method, entry.Path, entry.StatusCode, entry.ResponseTime,
		entry.IPAddress, entry.UserAgent, entry.RequestID)
	return err
}

// RecordDatasetLoad appends a row to the dataset load history
func RecordDatasetLoad(db *sql.DB, load models.DatasetLoad) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO dataset_loads (source, trigger_source, rows_read, rows_kept, rows_skipped, duration_ms, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, load.Source, load.Trigger, load.RowsRead, load.RowsKept, load.RowsSkipped,
		load.DurationMS, load.Status, nullString(load.Error))
	if err != nil {
		return 0, fmt.Errorf("failed to record dataset load: %w", err)
	}
	return result.LastInsertId()
}

// RecentDatasetLoads returns the newest load records first
func RecentDatasetLoads(db *sql.DB, limit int) ([]models.DatasetLoad, error) {
	rows, err := db.Query(`
		SELECT id, source, trigger_source, rows_read, rows_kept, rows_skipped, duration_ms, status,
		       COALESCE(error, ''), created_at
		FROM dataset_loads
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset loads: %w", err)
	}
	defer rows.Close()

	loads := []models.DatasetLoad{}
	for rows.Next() {
		var l models.DatasetLoad
		if err := rows.Scan(&l.ID, &l.Source, &l.Trigger, &l.RowsRead, &l.RowsKept, &l.RowsSkipped,
			&l.DurationMS, &l.Status, &l.Error, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset load: %w", err)
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// RecentAPILogs returns the newest request log entries first
func RecentAPILogs(db *sql.DB, limit int) ([]APILog, error) {
	rows, err := db.Query(`
		SELECT id, user_id, method, path, status_code, response_time_ms,
		       COALESCE(ip_address, ''), COALESCE(user_agent, ''), COALESCE(request_id, ''), created_at
		FROM api_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query api logs: %w", err)
	}
	defer rows.Close()

	logs := []APILog{}
	for rows.Next() {
		var entry APILog
		var userID sql.NullInt64
		if err := rows.Scan(&entry.ID, &userID, &entry.Method, &entry.Path, &entry.StatusCode, &entry.ResponseTime,
			&entry.IPAddress, &entry.UserAgent, &entry.RequestID, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan api log: %w", err)
		}
		if userID.Valid {
			id := int(userID.Int64)
			entry.UserID = &id
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// PruneAPILogs deletes request logs written before cutoff
func PruneAPILogs(db *sql.DB, cutoff time.Time) (int64, error) {
	// created_at holds SQLite's CURRENT_TIMESTAMP text form
	result, err := db.Exec("DELETE FROM api_logs WHERE created_at < ?", cutoff.UTC().Format(time.DateTime))
	if err != nil {
		return 0, fmt.Errorf("failed to prune api logs: %w", err)
	}
	return result.RowsAffected()
}
