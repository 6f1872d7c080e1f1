package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmagar/movieboard/internal/charts"
	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/services"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func setupAnalyticsTestRouter(t *testing.T) (*gin.Engine, *testEnv) {
	env := setupTestEnv(t)
	router := gin.New()

	analyticsHandler := NewAnalyticsHandler(env.analytics, env.index)
	analyticsHandler.ChartOptions = charts.Options{Width: 640, Height: 360}

	movies := router.Group("/movies")
	{
		movies.GET("/top", analyticsHandler.GetTopMovies)
		movies.GET("/top/chart.png", analyticsHandler.GetTopMoviesChart)
		movies.GET("/trends", analyticsHandler.GetTrend)
		movies.GET("/trends/chart.png", analyticsHandler.GetTrendChart)
		movies.GET("/counts", analyticsHandler.GetGenreCounts)
		movies.GET("/filtered", analyticsHandler.GetFilteredMovies)
		movies.GET("/genres", analyticsHandler.GetGenres)
		movies.GET("/years", analyticsHandler.GetYearBounds)
		movies.GET("/summary", analyticsHandler.GetSummary)
		movies.GET("/search", analyticsHandler.SearchMovies)
	}

	return router, env
}

func TestAnalyticsHandler_GetTopMovies(t *testing.T) {
	router, _ := setupAnalyticsTestRouter(t)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedTitles []string
		expectedTitle  string
	}{
		{
			name:           "defaults to first genre and full year range",
			query:          "",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Mad Max: Fury Road", "Heat", "Die Hard", "Speed"},
			expectedTitle:  "Top 4 Most Popular Movies in Action Genre (1988-2015)",
		},
		{
			name:           "inclusive year range and limit",
			query:          "?genre=Action&year_from=1994&year_to=1995&limit=5",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{"Heat", "Speed"},
			expectedTitle:  "Top 2 Most Popular Movies in Action Genre (1994-1995)",
		},
		{
			name:           "genre match is exact",
			query:          "?genre=action",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{},
			expectedTitle:  "Top 10 Most Popular Movies in action Genre (1988-2015)",
		},
		{
			name:           "year_from past the latest release",
			query:          "?genre=Action&year_from=2030",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{},
			expectedTitle:  "Top 10 Most Popular Movies in Action Genre (2030-2030)",
		},
		{
			name:           "year_to before the earliest release",
			query:          "?genre=Action&year_to=1980",
			expectedStatus: http.StatusOK,
			expectedTitles: []string{},
			expectedTitle:  "Top 10 Most Popular Movies in Action Genre (1980-1980)",
		},
		{
			name:           "limit outside the rank set",
			query:          "?limit=7",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "inverted year range",
			query:          "?year_from=2000&year_to=1990",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non numeric year",
			query:          "?year_from=nineties",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/movies/top"+tt.query, nil, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus != http.StatusOK {
				var response map[string]interface{}
				decode(t, w, &response)
				assert.Contains(t, response, "error")
				return
			}

			var report models.TopMoviesReport
			decode(t, w, &report)
			assert.Equal(t, tt.expectedTitle, report.Title)

			titles := []string{}
			for i, item := range report.Items {
				titles = append(titles, item.Title)
				assert.Equal(t, i+1, item.Rank)
			}
			assert.Equal(t, tt.expectedTitles, titles)
			assert.Equal(t, len(tt.expectedTitles) == 0, report.Empty)
			if report.Empty {
				assert.Equal(t, models.NoMoviesMessage, report.Message)
			}
		})
	}
}

func TestAnalyticsHandler_Charts(t *testing.T) {
	router, _ := setupAnalyticsTestRouter(t)

	for _, path := range []string{"/movies/top/chart.png", "/movies/trends/chart.png"} {
		t.Run(path, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, path+"?genre=Drama", nil, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(w.Body.Bytes(), pngMagic))
		})

		t.Run(path+" empty", func(t *testing.T) {
			w := doRequest(router, http.MethodGet, path+"?genre=Western", nil, "")
			assert.Equal(t, http.StatusNotFound, w.Code)

			var response map[string]string
			decode(t, w, &response)
			assert.Equal(t, models.NoMoviesMessage, response["error"])
		})
	}
}

func TestAnalyticsHandler_GetTrendChart_SingleYear(t *testing.T) {
	router, _ := setupAnalyticsTestRouter(t)

	w := doRequest(router, http.MethodGet, "/movies/trends/chart.png?genre=Drama&year_from=1996&year_to=1996", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), pngMagic))
}

func TestAnalyticsHandler_GetTrend(t *testing.T) {
	router, _ := setupAnalyticsTestRouter(t)

	w := doRequest(router, http.MethodGet, "/movies/trends?genre=Drama&limit=7", nil, "")
	require.Equal(t, http.StatusOK, w.Code, "trend ignores the rank limit")

	var report models.TrendReport
	decode(t, w, &report)
	assert.Equal(t, "Average Popularity of Drama Movies by Year (1988-2015)", report.Title)
	require.Len(t, report.Points, 2)
	assert.Equal(t, 1996, report.Points[0].Year)
	assert.Equal(t, 18.5, report.Points[0].MeanPopularity)
	assert.Equal(t, 1997, report.Points[1].Year)
}

func TestAnalyticsHandler_GetGenreCounts(t *testing.T) {
	router, _ := setupAnalyticsTestRouter(t)

	w := doRequest(router, http.MethodGet, "/movies/counts?year=1995", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var report models.GenreCountReport
	decode(t, w, &report)
	assert.Equal(t, 1995, report.Year)
	assert.Equal(t, map[string]int{"Action": 1}, report.Counts)
	assert.Equal(t, 1, report.Total)

	w = doRequest(router, http.MethodGet, "/movies/counts", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &report)
	assert.Equal(t, 2015, report.Year, "defaults to the latest known year")
}

func TestAnalyticsHandler_GetFilteredMovies(t *testing.T) {
	router, _ := setupAnalyticsTestRouter(t)

	w := doRequest(router, http.MethodGet, "/movies/filtered?genre=Action&year_from=1990", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var report models.FilteredMoviesReport
	decode(t, w, &report)
	assert.Equal(t, 3, report.Total)

	// File order, not ranked
	titles := []string{}
	for _, m := range report.Movies {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"Heat", "Speed", "Mad Max: Fury Road"}, titles)
}

func TestAnalyticsHandler_Options(t *testing.T) {
	router, _ := setupAnalyticsTestRouter(t)

	w := doRequest(router, http.MethodGet, "/movies/genres", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var genres struct {
		Genres  []string `json:"genres"`
		Default string   `json:"default"`
	}
	decode(t, w, &genres)
	assert.Equal(t, []string{"Action", "Drama"}, genres.Genres)
	assert.Equal(t, "Action", genres.Default)

	w = doRequest(router, http.MethodGet, "/movies/years", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var years map[string]int
	decode(t, w, &years)
	assert.Equal(t, 1988, years["min"])
	assert.Equal(t, 2015, years["max"])

	w = doRequest(router, http.MethodGet, "/movies/summary", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.DashboardSummary
	decode(t, w, &summary)
	assert.Equal(t, 7, summary.TotalMovies)
	assert.Equal(t, 1, summary.UnknownDates)
	assert.Equal(t, "Action", summary.DefaultGenre)
	assert.Equal(t, 10, summary.DefaultRankLimit)
}

func TestAnalyticsHandler_SearchMovies(t *testing.T) {
	router, _ := setupAnalyticsTestRouter(t)

	w := doRequest(router, http.MethodGet, "/movies/search?q=fargo", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var result models.SearchResult
	decode(t, w, &result)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "Fargo", result.Hits[0].Title)

	w = doRequest(router, http.MethodGet, "/movies/search?q=", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &result)
	assert.Empty(t, result.Hits)

	w = doRequest(router, http.MethodGet, "/movies/search?q=heat&limit=500", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsHandler_NotLoaded(t *testing.T) {
	router := gin.New()
	handler := NewAnalyticsHandler(services.NewAnalyticsService(dataset.NewStore("missing.csv"), []int{10}, 10), nil)
	router.GET("/movies/top", handler.GetTopMovies)
	router.GET("/movies/search", handler.SearchMovies)

	w := doRequest(router, http.MethodGet, "/movies/top", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(router, http.MethodGet, "/movies/search?q=heat", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
