package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmagar/movieboard/internal/charts"
	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/logging"
	"github.com/jmagar/movieboard/internal/metrics"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/search"
	"github.com/jmagar/movieboard/internal/services"
)

// AnalyticsHandler serves the dashboard queries under /movies
type AnalyticsHandler struct {
	AnalyticsService *services.AnalyticsService
	SearchIndex      *search.Index
	ChartOptions     charts.Options
}

// MovieQueryParams are the shared filter parameters. Omitted values fall back
// to the first genre, the dataset's year bounds and the default rank limit.
type MovieQueryParams struct {
	Genre    string `form:"genre" binding:"omitempty,max=200"`
	YearFrom *int   `form:"year_from" binding:"omitempty,gte=1000,lte=9999"`
	YearTo   *int   `form:"year_to" binding:"omitempty,gte=1000,lte=9999"`
	Limit    *int   `form:"limit" binding:"omitempty,gt=0"`
}

func (p MovieQueryParams) input() services.QueryInput {
	return services.QueryInput{
		Genre:    p.Genre,
		YearFrom: p.YearFrom,
		YearTo:   p.YearTo,
		Limit:    p.Limit,
	}
}

type genreCountParams struct {
	Year *int `form:"year" binding:"omitempty,gte=1000,lte=9999"`
}

type searchParams struct {
	Query  string `form:"q"`
	Genre  string `form:"genre"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
	Offset int    `form:"offset" binding:"omitempty,gte=0"`
}

func NewAnalyticsHandler(analytics *services.AnalyticsService, index *search.Index) *AnalyticsHandler {
	return &AnalyticsHandler{
		AnalyticsService: analytics,
		SearchIndex:      index,
	}
}

// respondServiceError maps service errors to status codes
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dataset.ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dataset is not loaded yet"})
	case errors.Is(err, services.ErrInvalidRankLimit), errors.Is(err, services.ErrInvalidYearRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.Error().Err(err).Str("path", c.FullPath()).Msg("query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run query"})
	}
}

func bindMovieQuery(c *gin.Context) (MovieQueryParams, bool) {
	var params MovieQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return params, false
	}
	return params, true
}

// GetTopMovies godoc
// @Summary Ranked movies
// @Description The most popular movies of a genre released within a year range
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param genre query string false "Primary genre (defaults to the first genre)"
// @Param year_from query int false "First release year, inclusive"
// @Param year_to query int false "Last release year, inclusive"
// @Param limit query int false "Number of movies, one of the configured rank limits"
// @Success 200 {object} models.TopMoviesReport
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /movies/top [get]
func (h *AnalyticsHandler) GetTopMovies(c *gin.Context) {
	params, ok := bindMovieQuery(c)
	if !ok {
		return
	}

	report, err := h.AnalyticsService.TopMovies(params.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetTopMoviesChart godoc
// @Summary Ranked movies bar chart
// @Tags movies
// @Produce png
// @Security BearerAuth
// @Param genre query string false "Primary genre"
// @Param year_from query int false "First release year, inclusive"
// @Param year_to query int false "Last release year, inclusive"
// @Param limit query int false "Number of movies"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /movies/top/chart.png [get]
func (h *AnalyticsHandler) GetTopMoviesChart(c *gin.Context) {
	params, ok := bindMovieQuery(c)
	if !ok {
		return
	}

	report, err := h.AnalyticsService.TopMovies(params.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	err = charts.RenderTopBar(*report, &buf, h.ChartOptions)
	h.writeChart(c, "top_bar", buf.Bytes(), err)
}

// GetTrend godoc
// @Summary Popularity trend
// @Description Mean popularity per release year for a genre
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param genre query string false "Primary genre"
// @Param year_from query int false "First release year, inclusive"
// @Param year_to query int false "Last release year, inclusive"
// @Success 200 {object} models.TrendReport
// @Failure 400 {object} map[string]string
// @Router /movies/trends [get]
func (h *AnalyticsHandler) GetTrend(c *gin.Context) {
	params, ok := bindMovieQuery(c)
	if !ok {
		return
	}

	report, err := h.AnalyticsService.Trend(params.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetTrendChart godoc
// @Summary Popularity trend line chart
// @Tags movies
// @Produce png
// @Security BearerAuth
// @Param genre query string false "Primary genre"
// @Param year_from query int false "First release year, inclusive"
// @Param year_to query int false "Last release year, inclusive"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /movies/trends/chart.png [get]
func (h *AnalyticsHandler) GetTrendChart(c *gin.Context) {
	params, ok := bindMovieQuery(c)
	if !ok {
		return
	}

	report, err := h.AnalyticsService.Trend(params.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	err = charts.RenderTrendLine(*report, &buf, h.ChartOptions)
	h.writeChart(c, "trend_line", buf.Bytes(), err)
}

func (h *AnalyticsHandler) writeChart(c *gin.Context, name string, png []byte, err error) {
	if errors.Is(err, charts.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": models.NoMoviesMessage})
		return
	}
	metrics.RecordChartRender(name, err)
	if err != nil {
		logging.Error().Err(err).Str("chart", name).Msg("failed to render chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render chart"})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", png)
}

// GetGenreCounts godoc
// @Summary Movies per genre
// @Description Counts of movies per primary genre released in one year (defaults to the latest year)
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param year query int false "Release year"
// @Success 200 {object} models.GenreCountReport
// @Router /movies/counts [get]
func (h *AnalyticsHandler) GetGenreCounts(c *gin.Context) {
	var params genreCountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.AnalyticsService.GenreCounts(params.Year)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetFilteredMovies godoc
// @Summary Filtered movies
// @Description The genre and year filtered subset in file order
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param genre query string false "Primary genre"
// @Param year_from query int false "First release year, inclusive"
// @Param year_to query int false "Last release year, inclusive"
// @Success 200 {object} models.FilteredMoviesReport
// @Router /movies/filtered [get]
func (h *AnalyticsHandler) GetFilteredMovies(c *gin.Context) {
	params, ok := bindMovieQuery(c)
	if !ok {
		return
	}
	params.Limit = nil

	report, err := h.AnalyticsService.Filtered(params.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetGenres godoc
// @Summary Genre options
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /movies/genres [get]
func (h *AnalyticsHandler) GetGenres(c *gin.Context) {
	genres, err := h.AnalyticsService.Genres()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := gin.H{"genres": genres, "default": nil}
	if len(genres) > 0 {
		response["default"] = genres[0]
	}
	c.JSON(http.StatusOK, response)
}

// GetYearBounds godoc
// @Summary Release year bounds
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /movies/years [get]
func (h *AnalyticsHandler) GetYearBounds(c *gin.Context) {
	bounds, ok, err := h.AnalyticsService.YearBounds()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !ok {
		c.JSON(http.StatusOK, gin.H{"min": nil, "max": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"min": bounds.Lo, "max": bounds.Hi})
}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Snapshot statistics and the default selections
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardSummary
// @Router /movies/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.AnalyticsService.Summary()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SearchMovies godoc
// @Summary Search titles
// @Description Fuzzy full-text search over movie titles
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search text"
// @Param genre query string false "Exact genre filter"
// @Param limit query int false "Page size (1-100)"
// @Param offset query int false "Hits to skip"
// @Success 200 {object} models.SearchResult
// @Router /movies/search [get]
func (h *AnalyticsHandler) SearchMovies(c *gin.Context) {
	var params searchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if h.SearchIndex == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search index is not available"})
		return
	}

	result, err := h.SearchIndex.Search(c.Request.Context(), search.Params{
		Query:  params.Query,
		Genre:  params.Genre,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		logging.Error().Err(err).Str("query", params.Query).Msg("search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
