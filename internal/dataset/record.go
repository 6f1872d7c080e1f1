// Package dataset loads the movie metadata CSV into immutable in-memory
// snapshots and keeps the current snapshot available to readers.
package dataset

import (
	"strings"
	"time"
)

// MovieRecord is one row of the movie metadata file.
//
// The release year is not stored; it is always derived from ReleaseDate.
type MovieRecord struct {
	Position     int        `json:"position"`
	Title        string     `json:"title"`
	PrimaryGenre string     `json:"primary_genre"`
	ReleaseDate  *time.Time `json:"release_date,omitempty"`
	Popularity   float64    `json:"popularity"`
}

// ReleaseYear returns the year of ReleaseDate, or false when the date is unknown.
func (m MovieRecord) ReleaseYear() (int, bool) {
	if m.ReleaseDate == nil {
		return 0, false
	}
	return m.ReleaseDate.Year(), true
}

// HasReleaseDate reports whether the release date parsed.
func (m MovieRecord) HasReleaseDate() bool {
	return m.ReleaseDate != nil
}

// dateLayouts are tried in order when parsing release_date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"2006-01",
	"2006",
}

// ParseReleaseDate parses an ISO-ish date string. Empty or malformed values
// yield nil (unknown), never an error.
func ParseReleaseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// Date is a convenience constructor for tests and fixtures.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
