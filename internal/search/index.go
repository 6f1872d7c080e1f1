// Package search keeps an in-memory bleve index over the movie titles of the
// current dataset snapshot.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/logging"
	"github.com/jmagar/movieboard/internal/models"
)

const batchSize = 500

// Index wraps an in-memory bleve index together with the snapshot it was
// built from. All methods are safe for concurrent use.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
	ds    *dataset.Dataset
}

// Params configures a search.
type Params struct {
	Query  string
	Genre  string // exact genre filter, optional
	Limit  int
	Offset int
}

// NewIndex creates an empty index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Index{index: idx}, nil
}

// Rebuild indexes every record of ds into a fresh index and swaps it in.
// Searches keep using the previous index until the swap.
func (s *Index) Rebuild(ds *dataset.Dataset) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	records := ds.Records()
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))

		batch := fresh.NewBatch()
		for _, rec := range records[i:end] {
			if err := batch.Index(docID(rec.Position), document(rec)); err != nil {
				fresh.Close()
				return fmt.Errorf("batch index %d: %w", rec.Position, err)
			}
		}
		if err := fresh.Batch(batch); err != nil {
			fresh.Close()
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.ds = ds
	s.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close previous search index")
		}
	}

	logging.Info().Int("documents", len(records)).Msg("search index rebuilt")
	return nil
}

// DocumentCount returns the number of indexed movies.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Close releases the index.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Search runs a title query. An empty query returns no hits.
func (s *Index) Search(ctx context.Context, params Params) (*models.SearchResult, error) {
	q := strings.TrimSpace(params.Query)
	result := &models.SearchResult{Query: q, Hits: []models.SearchHit{}}
	if q == "" {
		return result, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	req := bleve.NewSearchRequestOptions(buildQuery(q, params.Genre), limit, max(params.Offset, 0), false)
	req.SortBy([]string{"-_score", fieldPosition})

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result.Total = res.Total
	for _, hit := range res.Hits {
		pos, err := strconv.Atoi(hit.ID)
		if err != nil {
			continue
		}
		rec, ok := s.ds.At(pos)
		if !ok {
			continue
		}
		h := models.SearchHit{
			Position:     rec.Position,
			Title:        rec.Title,
			PrimaryGenre: rec.PrimaryGenre,
			Popularity:   rec.Popularity,
			Score:        hit.Score,
		}
		if year, ok := rec.ReleaseYear(); ok {
			h.ReleaseYear = &year
		}
		result.Hits = append(result.Hits, h)
	}
	return result, nil
}

func buildQuery(text, genre string) query.Query {
	match := bleve.NewMatchQuery(text)
	match.SetField(fieldTitle)
	match.SetBoost(3.0)

	textQueries := []query.Query{match}

	// Typo tolerance and prefix matching only make sense for single terms
	if !strings.ContainsAny(text, " \t") {
		term := strings.ToLower(text)

		fuzzy := bleve.NewFuzzyQuery(term)
		fuzzy.SetFuzziness(1)
		fuzzy.SetField(fieldTitle)
		fuzzy.SetBoost(0.8)
		textQueries = append(textQueries, fuzzy)

		if len(term) >= 2 {
			prefix := bleve.NewPrefixQuery(term)
			prefix.SetField(fieldTitle)
			prefix.SetBoost(0.5)
			textQueries = append(textQueries, prefix)
		}
	}

	var q query.Query = bleve.NewDisjunctionQuery(textQueries...)
	if genre != "" {
		gq := bleve.NewTermQuery(genre)
		gq.SetField(fieldGenre)
		q = bleve.NewConjunctionQuery(q, gq)
	}
	return q
}

func docID(position int) string {
	return strconv.Itoa(position)
}

func document(rec dataset.MovieRecord) map[string]any {
	doc := map[string]any{
		fieldTitle:    rec.Title,
		fieldGenre:    rec.PrimaryGenre,
		fieldPosition: float64(rec.Position),
	}
	if year, ok := rec.ReleaseYear(); ok {
		doc[fieldYear] = float64(year)
	}
	return doc
}
