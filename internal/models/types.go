package models

import (
	"time"

	"github.com/jmagar/movieboard/internal/dataset"
)

// DatasetInfo describes the active snapshot and its last recorded reload.
type DatasetInfo struct {
	Source           string             `json:"source"`
	Records          int                `json:"records"`
	LoadedAt         time.Time          `json:"loaded_at"`
	Report           dataset.LoadReport `json:"report"`
	LastReload       *string            `json:"last_reload,omitempty"`
	RecentLoads      []DatasetLoad      `json:"recent_loads"`
	ActiveReloadJobs int                `json:"active_reload_jobs"`
	Watching         bool               `json:"watching"`
}

// DatasetLoad is one row of the dataset_loads history table.
type DatasetLoad struct {
	ID          int       `json:"id"`
	Source      string    `json:"source"`
	Trigger     string    `json:"trigger"`
	RowsRead    int       `json:"rows_read"`
	RowsKept    int       `json:"rows_kept"`
	RowsSkipped int       `json:"rows_skipped"`
	DurationMS  int64     `json:"duration_ms"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReloadResult is stored as the result of a completed reload job.
type ReloadResult struct {
	Source      string `json:"source"`
	RowsRead    int    `json:"rows_read"`
	RowsKept    int    `json:"rows_kept"`
	RowsSkipped int    `json:"rows_skipped"`
	Indexed     int    `json:"indexed"`
	Mirrored    int    `json:"mirrored"`
}

type SearchHit struct {
	Position     int     `json:"position"`
	Title        string  `json:"title"`
	PrimaryGenre string  `json:"primary_genre"`
	ReleaseYear  *int    `json:"release_year,omitempty"`
	Popularity   float64 `json:"popularity"`
	Score        float64 `json:"score"`
}

type SearchResult struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
	Total uint64      `json:"total"`
}
