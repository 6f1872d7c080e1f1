package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `title,primary_genre,release_date,popularity,vote_average
"Heat",Action,1995-12-15,41.5,7.9
"Se7en",Thriller,1995/09/22,38.2,8.3
"The Lost, File",Drama,not-a-date,12.0,6.1
"Blank Pop",Drama,2001-01-01,,5.0
"Negative",Drama,2001-01-01,-3,5.0
,Drama,2001-01-01,3,5.0
"Year Only",Comedy,1999,7.25,6.0
`

func TestParse(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV), "sample.csv")
	require.NoError(t, err)

	require.Equal(t, 4, ds.Len())
	report := ds.Report()
	assert.Equal(t, 7, report.RowsRead)
	assert.Equal(t, 4, report.RowsKept)
	assert.Equal(t, 3, report.RowsSkipped)
	assert.Equal(t, 1, report.UnknownDates)
	assert.Equal(t, "sample.csv", ds.Source())

	records := ds.Records()
	assert.Equal(t, "Heat", records[0].Title)
	assert.Equal(t, "Action", records[0].PrimaryGenre)
	assert.Equal(t, 41.5, records[0].Popularity)
	year, ok := records[0].ReleaseYear()
	assert.True(t, ok)
	assert.Equal(t, 1995, year)

	assert.Equal(t, "The Lost, File", records[2].Title)
	_, ok = records[2].ReleaseYear()
	assert.False(t, ok, "malformed date must be unknown")

	year, ok = records[3].ReleaseYear()
	assert.True(t, ok)
	assert.Equal(t, 1999, year)

	for i, r := range records {
		assert.Equal(t, i, r.Position)
	}
}

func TestParse_HeaderNormalization(t *testing.T) {
	input := "\ufeff Title ,PRIMARY_GENRE,Release_Date,Popularity\nAlien,Horror,1979-05-25,30\n"
	ds, err := Parse(strings.NewReader(input), "bom.csv")
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "Alien", ds.Records()[0].Title)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{
			name:   "empty file",
			input:  "",
			target: ErrEmptyFile,
		},
		{
			name:   "missing popularity column",
			input:  "title,primary_genre,release_date\nA,Action,2010-01-01\n",
			target: ErrMissingColumn,
		},
		{
			name:   "missing genre column",
			input:  "title,release_date,popularity\nA,2010-01-01,3\n",
			target: ErrMissingColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "bad.csv")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		input string
		want  *time.Time
	}{
		{"2010-07-16", Date(2010, time.July, 16)},
		{"2010-07-16T10:00:00Z", ptr(time.Date(2010, time.July, 16, 10, 0, 0, 0, time.UTC))},
		{"2010-07-16 10:00:00", ptr(time.Date(2010, time.July, 16, 10, 0, 0, 0, time.UTC))},
		{"2010/07/16", Date(2010, time.July, 16)},
		{"07/16/2010", Date(2010, time.July, 16)},
		{"7/6/2010", Date(2010, time.July, 6)},
		{"2010-07", Date(2010, time.July, 1)},
		{"2010", Date(2010, time.January, 1)},
		{"", nil},
		{"  ", nil},
		{"July 2010", nil},
		{"2010-13-45", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseReleaseDate(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v want %v", got, tt.want)
		})
	}
}

func TestNew_AssignsPositions(t *testing.T) {
	ds := New("fixture", []MovieRecord{
		{Position: 9, Title: "A", PrimaryGenre: "Action", Popularity: 1},
		{Position: 3, Title: "B", PrimaryGenre: "Action", Popularity: 2, ReleaseDate: Date(2000, 1, 1)},
	})

	assert.Equal(t, 0, ds.Records()[0].Position)
	assert.Equal(t, 1, ds.Records()[1].Position)
	assert.Equal(t, 1, ds.Report().UnknownDates)

	rec, ok := ds.At(1)
	assert.True(t, ok)
	assert.Equal(t, "B", rec.Title)
	_, ok = ds.At(2)
	assert.False(t, ok)
}

func TestNilDataset(t *testing.T) {
	var ds *Dataset
	assert.Equal(t, 0, ds.Len())
	assert.Nil(t, ds.Records())
	_, ok := ds.At(0)
	assert.False(t, ok)
}

func ptr(t time.Time) *time.Time {
	return &t
}
