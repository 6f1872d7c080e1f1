package models

import (
	"time"

	"github.com/jmagar/movieboard/internal/pipeline"
)

// NoMoviesMessage is shown when a ranked or trend query matches nothing.
const NoMoviesMessage = "No movies found in the selected year range and genre."

// MovieQuery is the filter shared by the ranked, trend and table views.
type MovieQuery struct {
	Genre string             `json:"genre"`
	Years pipeline.YearRange `json:"years"`
	Limit int                `json:"limit,omitempty"`
}

type TopMovieItem struct {
	Rank       int     `json:"rank"`
	Position   int     `json:"position"`
	Title      string  `json:"title"`
	Popularity float64 `json:"popularity"`
	Genre      string  `json:"genre"`
}

type TopMoviesReport struct {
	Title       string         `json:"title"`
	Query       MovieQuery     `json:"query"`
	Items       []TopMovieItem `json:"items"`
	Empty       bool           `json:"empty"`
	Message     string         `json:"message,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
}

type TrendReport struct {
	Title       string                `json:"title"`
	Query       MovieQuery            `json:"query"`
	Points      []pipeline.TrendPoint `json:"points"`
	Empty       bool                  `json:"empty"`
	Message     string                `json:"message,omitempty"`
	GeneratedAt time.Time             `json:"generated_at"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type GenreCountReport struct {
	Year        int            `json:"year"`
	Counts      map[string]int `json:"counts"`
	Rows        []GenreCount   `json:"rows"`
	Total       int            `json:"total"`
	GeneratedAt time.Time      `json:"generated_at"`
}

type FilteredMovie struct {
	Position     int     `json:"position"`
	Title        string  `json:"title"`
	PrimaryGenre string  `json:"primary_genre"`
	ReleaseDate  *string `json:"release_date,omitempty"`
	ReleaseYear  *int    `json:"release_year,omitempty"`
	Popularity   float64 `json:"popularity"`
}

type FilteredMoviesReport struct {
	Query  MovieQuery      `json:"query"`
	Movies []FilteredMovie `json:"movies"`
	Total  int             `json:"total"`
}

type DashboardSummary struct {
	TotalMovies      int                 `json:"total_movies"`
	UnknownDates     int                 `json:"unknown_dates"`
	Genres           []string            `json:"genres"`
	DefaultGenre     string              `json:"default_genre,omitempty"`
	YearBounds       *pipeline.YearRange `json:"year_bounds,omitempty"`
	RankLimits       []int               `json:"rank_limits"`
	DefaultRankLimit int                 `json:"default_rank_limit"`
	Source           string              `json:"source"`
	LoadedAt         time.Time           `json:"loaded_at"`
}
