package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmagar/movieboard/internal/catalog"
	"github.com/jmagar/movieboard/internal/logging"
)

// CatalogHandler browses the SQLite mirror of the current snapshot
type CatalogHandler struct {
	Catalog *catalog.Manager
}

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Offset   int `json:"offset"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	HasNext    bool        `json:"has_next"`
	HasPrev    bool        `json:"has_prev"`
}

type catalogListParams struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Genre    string `form:"genre"`
	Search   string `form:"search"`
	YearFrom *int   `form:"year_from"`
	YearTo   *int   `form:"year_to"`
}

func NewCatalogHandler(manager *catalog.Manager) *CatalogHandler {
	return &CatalogHandler{Catalog: manager}
}

// validatePagination ensures pagination parameters are valid
func validatePagination(params *PaginationParams) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20 // Default page size
	}
	if params.PageSize > 100 {
		params.PageSize = 100 // Max page size
	}
	params.Offset = (params.Page - 1) * params.PageSize
}

// createPaginatedResponse creates a standardized paginated response
func createPaginatedResponse(data interface{}, params PaginationParams, total int64) *PaginatedResponse {
	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	return &PaginatedResponse{
		Data:       data,
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// GetMovies godoc
// @Summary Browse the catalog
// @Description Paginated movies in file order with optional genre, title and year filters
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size (max 100)" default(20)
// @Param genre query string false "Exact primary genre"
// @Param search query string false "Title substring"
// @Param year_from query int false "First release year, inclusive"
// @Param year_to query int false "Last release year, inclusive"
// @Success 200 {object} PaginatedResponse
// @Failure 400 {object} map[string]string
// @Router /catalog/movies [get]
func (h *CatalogHandler) GetMovies(c *gin.Context) {
	var query catalogListParams
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if query.YearFrom != nil && query.YearTo != nil && *query.YearFrom > *query.YearTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year_from must not be after year_to"})
		return
	}

	params := PaginationParams{Page: query.Page, PageSize: query.PageSize}
	validatePagination(&params)

	movies, total, err := h.Catalog.List(c.Request.Context(), catalog.ListParams{
		Genre:    query.Genre,
		Title:    query.Search,
		YearFrom: query.YearFrom,
		YearTo:   query.YearTo,
		Limit:    params.PageSize,
		Offset:   params.Offset,
	})
	if err != nil {
		logging.Error().Err(err).Msg("failed to list catalog movies")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movies"})
		return
	}

	c.JSON(http.StatusOK, createPaginatedResponse(movies, params, total))
}

// GetMovie godoc
// @Summary Get a catalog movie
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 200 {object} database.Movie
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /catalog/movies/{id} [get]
func (h *CatalogHandler) GetMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID"})
		return
	}

	movie, err := h.Catalog.Get(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}
	if err != nil {
		logging.Error().Err(err).Int("movie_id", id).Msg("failed to fetch catalog movie")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movie"})
		return
	}

	c.JSON(http.StatusOK, movie)
}

// GetStats godoc
// @Summary Catalog statistics
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} catalog.Stats
// @Router /catalog/stats [get]
func (h *CatalogHandler) GetStats(c *gin.Context) {
	stats, err := h.Catalog.Stats(c.Request.Context())
	if err != nil {
		logging.Error().Err(err).Msg("failed to compute catalog stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute catalog statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
