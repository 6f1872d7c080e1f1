package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/metrics"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/pipeline"
)

var (
	ErrInvalidRankLimit = errors.New("limit is not one of the allowed rank limits")
	ErrInvalidYearRange = errors.New("year_from must not be after year_to")
)

// AnalyticsService answers dashboard queries against the current snapshot.
type AnalyticsService struct {
	Store            *dataset.Store
	RankLimits       []int
	DefaultRankLimit int
}

func NewAnalyticsService(store *dataset.Store, rankLimits []int, defaultLimit int) *AnalyticsService {
	return &AnalyticsService{
		Store:            store,
		RankLimits:       rankLimits,
		DefaultRankLimit: defaultLimit,
	}
}

// QueryInput holds optional request parameters before defaults are applied.
type QueryInput struct {
	Genre    string
	YearFrom *int
	YearTo   *int
	Limit    *int
}

// ResolveQuery fills in defaults: the first genre, the dataset's year bounds
// and the default rank limit. Only an explicit year_from after an explicit
// year_to is rejected.
func (s *AnalyticsService) ResolveQuery(ds *dataset.Dataset, in QueryInput) (models.MovieQuery, error) {
	q := models.MovieQuery{Genre: in.Genre, Limit: s.DefaultRankLimit}

	if q.Genre == "" {
		if genres := pipeline.Genres(ds); len(genres) > 0 {
			q.Genre = genres[0]
		}
	}

	if in.YearFrom != nil && in.YearTo != nil && *in.YearFrom > *in.YearTo {
		return q, fmt.Errorf("%w: %d > %d", ErrInvalidYearRange, *in.YearFrom, *in.YearTo)
	}

	// A single explicit bound outside the data collapses the defaulted side
	// onto it, so the query is well formed and simply matches nothing.
	bounds, _ := pipeline.YearBounds(ds)
	q.Years = bounds
	if in.YearFrom != nil {
		q.Years.Lo = *in.YearFrom
		q.Years.Hi = max(q.Years.Hi, q.Years.Lo)
	}
	if in.YearTo != nil {
		q.Years.Hi = *in.YearTo
		if in.YearFrom == nil {
			q.Years.Lo = min(q.Years.Lo, q.Years.Hi)
		}
	}

	if in.Limit != nil {
		if !slices.Contains(s.RankLimits, *in.Limit) {
			return q, fmt.Errorf("%w: %d (allowed %v)", ErrInvalidRankLimit, *in.Limit, s.RankLimits)
		}
		q.Limit = *in.Limit
	}
	return q, nil
}

// TopMovies ranks the movies of a genre within a year range.
func (s *AnalyticsService) TopMovies(in QueryInput) (*models.TopMoviesReport, error) {
	ds, err := s.Store.Snapshot()
	if err != nil {
		return nil, err
	}
	q, err := s.ResolveQuery(ds, in)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ranked := pipeline.TopRanked(ds, q.Genre, q.Years, q.Limit)
	metrics.ObserveQuery("top", start, len(ranked) == 0)

	// The title counts the bars actually shown when fewer than limit match
	shown := q.Limit
	if n := len(ranked); n > 0 && n < shown {
		shown = n
	}
	report := &models.TopMoviesReport{
		Title:       fmt.Sprintf("Top %d Most Popular Movies in %s Genre (%d-%d)", shown, q.Genre, q.Years.Lo, q.Years.Hi),
		Query:       q,
		Items:       make([]models.TopMovieItem, 0, len(ranked)),
		GeneratedAt: time.Now(),
	}
	for i, rec := range ranked {
		report.Items = append(report.Items, models.TopMovieItem{
			Rank:       i + 1,
			Position:   rec.Position,
			Title:      rec.Title,
			Popularity: rec.Popularity,
			Genre:      rec.PrimaryGenre,
		})
	}
	if len(report.Items) == 0 {
		report.Empty = true
		report.Message = models.NoMoviesMessage
	}
	return report, nil
}

// Trend averages popularity per release year.
func (s *AnalyticsService) Trend(in QueryInput) (*models.TrendReport, error) {
	ds, err := s.Store.Snapshot()
	if err != nil {
		return nil, err
	}
	in.Limit = nil
	q, err := s.ResolveQuery(ds, in)
	if err != nil {
		return nil, err
	}
	q.Limit = 0

	start := time.Now()
	points := pipeline.TrendByYear(ds, q.Genre, q.Years)
	metrics.ObserveQuery("trend", start, len(points) == 0)

	report := &models.TrendReport{
		Title:       fmt.Sprintf("Average Popularity of %s Movies by Year (%d-%d)", q.Genre, q.Years.Lo, q.Years.Hi),
		Query:       q,
		Points:      points,
		GeneratedAt: time.Now(),
	}
	if len(points) == 0 {
		report.Empty = true
		report.Message = models.NoMoviesMessage
	}
	return report, nil
}

// GenreCounts counts releases per genre in one year. A nil year means the
// latest year with a known release date.
func (s *AnalyticsService) GenreCounts(year *int) (*models.GenreCountReport, error) {
	ds, err := s.Store.Snapshot()
	if err != nil {
		return nil, err
	}

	target := 0
	if year != nil {
		target = *year
	} else if bounds, ok := pipeline.YearBounds(ds); ok {
		target = bounds.Hi
	}

	start := time.Now()
	counts := pipeline.CountByGenre(ds, target)
	metrics.ObserveQuery("counts", start, len(counts) == 0)

	report := &models.GenreCountReport{
		Year:        target,
		Counts:      counts,
		Rows:        make([]models.GenreCount, 0, len(counts)),
		GeneratedAt: time.Now(),
	}
	for genre, n := range counts {
		report.Rows = append(report.Rows, models.GenreCount{Genre: genre, Count: n})
		report.Total += n
	}
	slices.SortFunc(report.Rows, func(a, b models.GenreCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Genre, b.Genre)
	})
	return report, nil
}

// Filtered returns the unsorted subset behind the ranked view.
func (s *AnalyticsService) Filtered(in QueryInput) (*models.FilteredMoviesReport, error) {
	ds, err := s.Store.Snapshot()
	if err != nil {
		return nil, err
	}
	in.Limit = nil
	q, err := s.ResolveQuery(ds, in)
	if err != nil {
		return nil, err
	}
	q.Limit = 0

	start := time.Now()
	records := pipeline.Filter(ds, q.Genre, q.Years)
	metrics.ObserveQuery("filtered", start, len(records) == 0)

	report := &models.FilteredMoviesReport{
		Query:  q,
		Movies: make([]models.FilteredMovie, 0, len(records)),
		Total:  len(records),
	}
	for _, rec := range records {
		report.Movies = append(report.Movies, toFilteredMovie(rec))
	}
	return report, nil
}

func toFilteredMovie(rec dataset.MovieRecord) models.FilteredMovie {
	m := models.FilteredMovie{
		Position:     rec.Position,
		Title:        rec.Title,
		PrimaryGenre: rec.PrimaryGenre,
		Popularity:   rec.Popularity,
	}
	if rec.ReleaseDate != nil {
		date := rec.ReleaseDate.Format(time.DateOnly)
		year := rec.ReleaseDate.Year()
		m.ReleaseDate = &date
		m.ReleaseYear = &year
	}
	return m
}

// Genres lists genre options in first-appearance order.
func (s *AnalyticsService) Genres() ([]string, error) {
	ds, err := s.Store.Snapshot()
	if err != nil {
		return nil, err
	}
	return pipeline.Genres(ds), nil
}

// YearBounds returns the slider bounds; ok is false when no date is known.
func (s *AnalyticsService) YearBounds() (pipeline.YearRange, bool, error) {
	ds, err := s.Store.Snapshot()
	if err != nil {
		return pipeline.YearRange{}, false, err
	}
	bounds, ok := pipeline.YearBounds(ds)
	return bounds, ok, nil
}

// Summary describes the snapshot and the dashboard's default selections.
func (s *AnalyticsService) Summary() (*models.DashboardSummary, error) {
	ds, err := s.Store.Snapshot()
	if err != nil {
		return nil, err
	}

	genres := pipeline.Genres(ds)
	summary := &models.DashboardSummary{
		TotalMovies:      ds.Len(),
		UnknownDates:     ds.Report().UnknownDates,
		Genres:           genres,
		RankLimits:       s.RankLimits,
		DefaultRankLimit: s.DefaultRankLimit,
		Source:           ds.Source(),
		LoadedAt:         ds.LoadedAt(),
	}
	if len(genres) > 0 {
		summary.DefaultGenre = genres[0]
	}
	if bounds, ok := pipeline.YearBounds(ds); ok {
		summary.YearBounds = &bounds
	}
	return summary, nil
}
