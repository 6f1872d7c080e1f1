package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Field names in the index.
const (
	fieldTitle    = "title"
	fieldGenre    = "genre"
	fieldYear     = "year"
	fieldPosition = "position"
)

// buildIndexMapping maps titles to English full text, genres to exact
// keywords and years/positions to numbers.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = false
	titleFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt(fieldTitle, titleFieldMapping)

	genreFieldMapping := bleve.NewTextFieldMapping()
	genreFieldMapping.Analyzer = keyword.Name
	genreFieldMapping.Store = false
	docMapping.AddFieldMappingsAt(fieldGenre, genreFieldMapping)

	yearFieldMapping := bleve.NewNumericFieldMapping()
	yearFieldMapping.Store = false
	docMapping.AddFieldMappingsAt(fieldYear, yearFieldMapping)

	// Used as the tie-breaker when scores are equal
	positionFieldMapping := bleve.NewNumericFieldMapping()
	positionFieldMapping.Store = false
	docMapping.AddFieldMappingsAt(fieldPosition, positionFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}
