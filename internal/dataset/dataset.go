package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column names the loader requires in the header row.
const (
	ColumnTitle        = "title"
	ColumnPrimaryGenre = "primary_genre"
	ColumnReleaseDate  = "release_date"
	ColumnPopularity   = "popularity"
)

var requiredColumns = []string{ColumnTitle, ColumnPrimaryGenre, ColumnReleaseDate, ColumnPopularity}

// Errors
var (
	ErrMissingColumn = errors.New("required column missing")
	ErrEmptyFile     = errors.New("file has no header row")
)

// LoadReport summarizes a single load.
type LoadReport struct {
	RowsRead     int           `json:"rows_read"`
	RowsKept     int           `json:"rows_kept"`
	RowsSkipped  int           `json:"rows_skipped"`
	UnknownDates int           `json:"unknown_dates"`
	Duration     time.Duration `json:"duration_ns"`
}

// Dataset is an immutable snapshot of the movie file. Callers must not modify
// the slice returned by Records.
type Dataset struct {
	records  []MovieRecord
	source   string
	loadedAt time.Time
	report   LoadReport
}

// New builds a snapshot from records already in file order. Positions are
// reassigned to match slice order.
func New(source string, records []MovieRecord) *Dataset {
	owned := make([]MovieRecord, len(records))
	copy(owned, records)

	unknown := 0
	for i := range owned {
		owned[i].Position = i
		if owned[i].ReleaseDate == nil {
			unknown++
		}
	}

	return &Dataset{
		records:  owned,
		source:   source,
		loadedAt: time.Now(),
		report: LoadReport{
			RowsRead:     len(owned),
			RowsKept:     len(owned),
			UnknownDates: unknown,
		},
	}
}

// Records returns the rows in file order.
func (d *Dataset) Records() []MovieRecord {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the record at position i.
func (d *Dataset) At(i int) (MovieRecord, bool) {
	if d == nil || i < 0 || i >= len(d.records) {
		return MovieRecord{}, false
	}
	return d.records[i], true
}

// Source is the path the snapshot was read from.
func (d *Dataset) Source() string { return d.source }

// LoadedAt is when parsing finished.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Report returns the load statistics.
func (d *Dataset) Report() LoadReport { return d.report }

// Load reads and parses the CSV file at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return ds, nil
}

// Parse reads CSV rows from r. Rows with an empty title or genre, or with a
// popularity that is not a finite non-negative number, are skipped and
// counted. Malformed release dates become unknown.
func Parse(r io.Reader, source string) (*Dataset, error) {
	start := time.Now()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{source: source}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", ds.report.RowsRead+2, err)
		}
		ds.report.RowsRead++

		record, ok := parseRow(row, index)
		if !ok {
			ds.report.RowsSkipped++
			continue
		}
		record.Position = len(ds.records)
		if record.ReleaseDate == nil {
			ds.report.UnknownDates++
		}
		ds.records = append(ds.records, record)
	}

	ds.report.RowsKept = len(ds.records)
	ds.loadedAt = time.Now()
	ds.report.Duration = time.Since(start)
	return ds, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func field(row []string, index map[string]int, col string) string {
	i := index[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, index map[string]int) (MovieRecord, bool) {
	title := field(row, index, ColumnTitle)
	genre := field(row, index, ColumnPrimaryGenre)
	if title == "" || genre == "" {
		return MovieRecord{}, false
	}

	popularity, err := strconv.ParseFloat(field(row, index, ColumnPopularity), 64)
	if err != nil || math.IsNaN(popularity) || math.IsInf(popularity, 0) || popularity < 0 {
		return MovieRecord{}, false
	}

	return MovieRecord{
		Title:        title,
		PrimaryGenre: genre,
		ReleaseDate:  ParseReleaseDate(field(row, index, ColumnReleaseDate)),
		Popularity:   popularity,
	}, true
}
