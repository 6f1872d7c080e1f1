// Package pipeline implements the filter, rank and aggregate queries the
// dashboard runs over a dataset snapshot. Every function is pure and safe for
// concurrent use because snapshots are immutable.
package pipeline

import (
	"cmp"
	"slices"

	"github.com/jmagar/movieboard/internal/dataset"
)

// YearRange is an inclusive range of release years. A range with Lo > Hi
// matches nothing.
type YearRange struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Contains reports whether year lies within the range.
func (r YearRange) Contains(year int) bool {
	return r.Lo <= year && year <= r.Hi
}

// Valid reports whether the range can match anything.
func (r YearRange) Valid() bool {
	return r.Lo <= r.Hi
}

// TrendPoint is the mean popularity of one release year.
type TrendPoint struct {
	Year           int     `json:"year"`
	MeanPopularity float64 `json:"mean_popularity"`
	Count          int     `json:"count"`
}

func matches(rec dataset.MovieRecord, genre string, years YearRange) bool {
	if rec.PrimaryGenre != genre {
		return false
	}
	year, ok := rec.ReleaseYear()
	return ok && years.Contains(year)
}

// Filter returns the records of genre released within years, in file order.
func Filter(ds *dataset.Dataset, genre string, years YearRange) []dataset.MovieRecord {
	out := []dataset.MovieRecord{}
	if !years.Valid() {
		return out
	}
	for _, rec := range ds.Records() {
		if matches(rec, genre, years) {
			out = append(out, rec)
		}
	}
	return out
}

// TopRanked returns at most limit matching records ordered by popularity,
// highest first. Records with equal popularity keep their file order.
func TopRanked(ds *dataset.Dataset, genre string, years YearRange, limit int) []dataset.MovieRecord {
	if limit <= 0 {
		return []dataset.MovieRecord{}
	}

	ranked := Filter(ds, genre, years)
	slices.SortStableFunc(ranked, func(a, b dataset.MovieRecord) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TrendByYear groups matching records by release year and averages their
// popularity. Points are ordered by ascending year.
func TrendByYear(ds *dataset.Dataset, genre string, years YearRange) []TrendPoint {
	type acc struct {
		sum   float64
		count int
	}

	groups := make(map[int]*acc)
	for _, rec := range Filter(ds, genre, years) {
		year, _ := rec.ReleaseYear()
		g, ok := groups[year]
		if !ok {
			g = &acc{}
			groups[year] = g
		}
		g.sum += rec.Popularity
		g.count++
	}

	points := make([]TrendPoint, 0, len(groups))
	for year, g := range groups {
		points = append(points, TrendPoint{
			Year:           year,
			MeanPopularity: g.sum / float64(g.count),
			Count:          g.count,
		})
	}
	slices.SortFunc(points, func(a, b TrendPoint) int {
		return cmp.Compare(a.Year, b.Year)
	})
	return points
}

// CountByGenre counts records released in year per genre. Genres with no
// records that year are absent.
func CountByGenre(ds *dataset.Dataset, year int) map[string]int {
	counts := make(map[string]int)
	for _, rec := range ds.Records() {
		if y, ok := rec.ReleaseYear(); ok && y == year {
			counts[rec.PrimaryGenre]++
		}
	}
	return counts
}

// Genres lists distinct primary genres in order of first appearance.
func Genres(ds *dataset.Dataset) []string {
	seen := make(map[string]struct{})
	genres := []string{}
	for _, rec := range ds.Records() {
		if _, ok := seen[rec.PrimaryGenre]; ok {
			continue
		}
		seen[rec.PrimaryGenre] = struct{}{}
		genres = append(genres, rec.PrimaryGenre)
	}
	return genres
}

// YearBounds returns the earliest and latest known release years. ok is
// false when no record has a known date.
func YearBounds(ds *dataset.Dataset) (bounds YearRange, ok bool) {
	for _, rec := range ds.Records() {
		year, known := rec.ReleaseYear()
		if !known {
			continue
		}
		if !ok {
			bounds = YearRange{Lo: year, Hi: year}
			ok = true
			continue
		}
		bounds.Lo = min(bounds.Lo, year)
		bounds.Hi = max(bounds.Hi, year)
	}
	return bounds, ok
}
