// Package catalog mirrors the active dataset snapshot into SQLite so the
// movie list can be browsed and paged with SQL.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmagar/movieboard/internal/database"
	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/logging"
)

// ErrNotFound is returned by Get when no movie has the requested ID.
var ErrNotFound = errors.New("movie not found")

// Manager reads and writes the movies table.
type Manager struct {
	db *sql.DB
}

// ListParams filters a catalog listing. Nil bounds are open.
type ListParams struct {
	Genre    string
	Title    string
	YearFrom *int
	YearTo   *int
	Limit    int
	Offset   int
}

// Stats summarizes the mirrored table.
type Stats struct {
	TotalMovies int            `json:"total_movies"`
	Genres      map[string]int `json:"genres"`
	MinYear     *int           `json:"min_year,omitempty"`
	MaxYear     *int           `json:"max_year,omitempty"`
}

// NewManager creates a catalog backed by db.
func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db}
}

// Replace rewrites the movies table from ds in one transaction. Movie IDs
// are file positions plus one. Returns the number of rows written.
func (m *Manager) Replace(ctx context.Context, ds *dataset.Dataset) (int, error) {
	start := time.Now()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM movies"); err != nil {
		return 0, fmt.Errorf("failed to clear movies: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO movies (id, position, title, primary_genre, release_date, release_year, popularity)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range ds.Records() {
		var date sql.NullString
		var year sql.NullInt64
		if rec.ReleaseDate != nil {
			date = sql.NullString{String: rec.ReleaseDate.Format(time.DateOnly), Valid: true}
			year = sql.NullInt64{Int64: int64(rec.ReleaseDate.Year()), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, rec.Position+1, rec.Position, rec.Title, rec.PrimaryGenre,
			date, year, rec.Popularity); err != nil {
			return 0, fmt.Errorf("failed to insert movie %q: %w", rec.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit movies: %w", err)
	}

	logging.Info().
		Int("movies", ds.Len()).
		Dur("duration", time.Since(start)).
		Msg("catalog mirror replaced")
	return ds.Len(), nil
}

func (p ListParams) where() (string, []any) {
	var conds []string
	var args []any

	if p.Genre != "" {
		conds = append(conds, "primary_genre = ?")
		args = append(args, p.Genre)
	}
	if p.Title != "" {
		conds = append(conds, "title LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(p.Title)+"%")
	}
	if p.YearFrom != nil {
		conds = append(conds, "release_year >= ?")
		args = append(args, *p.YearFrom)
	}
	if p.YearTo != nil {
		conds = append(conds, "release_year <= ?")
		args = append(args, *p.YearTo)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns one page of movies in file order and the total match count.
func (m *Manager) List(ctx context.Context, params ListParams) ([]database.Movie, int64, error) {
	where, args := params.where()

	var total int64
	if err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, position, title, primary_genre, release_date, release_year, popularity
		FROM movies` + where + `
		ORDER BY position
		LIMIT ? OFFSET ?`
	rows, err := m.db.QueryContext(ctx, query, append(args, limit, max(params.Offset, 0))...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []database.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate movies: %w", err)
	}
	return movies, total, nil
}

// Get returns a single movie by ID.
func (m *Manager) Get(ctx context.Context, id int) (*database.Movie, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT id, position, title, primary_genre, release_date, release_year, popularity
		FROM movies
		WHERE id = ?
	`, id)

	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// Stats aggregates the mirrored table.
func (m *Manager) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Genres: make(map[string]int)}

	var minYear, maxYear sql.NullInt64
	err := m.db.QueryRowContext(ctx, "SELECT COUNT(*), MIN(release_year), MAX(release_year) FROM movies").
		Scan(&stats.TotalMovies, &minYear, &maxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog stats: %w", err)
	}
	if minYear.Valid {
		lo, hi := int(minYear.Int64), int(maxYear.Int64)
		stats.MinYear, stats.MaxYear = &lo, &hi
	}

	rows, err := m.db.QueryContext(ctx, "SELECT primary_genre, COUNT(*) FROM movies GROUP BY primary_genre")
	if err != nil {
		return nil, fmt.Errorf("failed to query genre counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var genre string
		var count int
		if err := rows.Scan(&genre, &count); err != nil {
			return nil, fmt.Errorf("failed to scan genre count: %w", err)
		}
		stats.Genres[genre] = count
	}
	return stats, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (database.Movie, error) {
	var movie database.Movie
	var date sql.NullString
	var year sql.NullInt64

	if err := s.Scan(&movie.ID, &movie.Position, &movie.Title, &movie.PrimaryGenre, &date, &year, &movie.Popularity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return movie, err
		}
		return movie, fmt.Errorf("failed to scan movie: %w", err)
	}
	if date.Valid {
		movie.ReleaseDate = &date.String
	}
	if year.Valid {
		y := int(year.Int64)
		movie.ReleaseYear = &y
	}
	return movie, nil
}
