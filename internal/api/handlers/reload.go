package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/logging"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/services"
)

type ReloadHandler struct {
	ReloadService *services.DatasetReloadService
}

type ReloadResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type JobStatusResponse struct {
	JobID       string      `json:"job_id"`
	Status      string      `json:"status"`
	Progress    int         `json:"progress"`
	Message     string      `json:"message"`
	Error       string      `json:"error,omitempty"`
	Result      interface{} `json:"result,omitempty"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	DurationMs  int64       `json:"duration_ms,omitempty"`
}

func NewReloadHandler(reloadService *services.DatasetReloadService) *ReloadHandler {
	return &ReloadHandler{ReloadService: reloadService}
}

func toJobStatus(job *models.Job) JobStatusResponse {
	response := JobStatusResponse{
		JobID:       job.ID,
		Status:      string(job.Status),
		Progress:    job.Progress,
		Message:     job.Message,
		Error:       job.Error,
		Result:      job.Result,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
	}

	switch {
	case job.CompletedAt != nil && !job.StartedAt.IsZero():
		response.DurationMs = job.CompletedAt.Sub(job.StartedAt).Milliseconds()
	case job.Status == models.JobStatusRunning:
		response.DurationMs = time.Since(job.StartedAt).Milliseconds()
	}
	return response
}

// StartReload godoc
// @Summary Reload the dataset
// @Description Re-read the CSV file in a background job. The previous snapshot stays active until the new one parses.
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Success 202 {object} ReloadResponse
// @Failure 409 {object} ReloadResponse
// @Router /dataset/reload [post]
func (h *ReloadHandler) StartReload(c *gin.Context) {
	job, err := h.ReloadService.StartReload(services.TriggerAPI)
	if errors.Is(err, services.ErrReloadInProgress) {
		c.JSON(http.StatusConflict, ReloadResponse{
			Success: false,
			JobID:   job.ID,
			Status:  string(job.Status),
			Error:   err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ReloadResponse{
			Success: false,
			Error:   "Failed to start reload",
		})
		return
	}

	logging.Info().Str("job_id", job.ID).Str("username", c.GetString("username")).Msg("dataset reload requested")

	c.JSON(http.StatusAccepted, ReloadResponse{
		Success: true,
		JobID:   job.ID,
		Status:  string(job.Status),
		Message: "Dataset reload initiated",
	})
}

// GetReloadStatus godoc
// @Summary Reload job status
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /dataset/reload/status/{job_id} [get]
func (h *ReloadHandler) GetReloadStatus(c *gin.Context) {
	job, err := h.ReloadService.GetReloadStatus(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	response := toJobStatus(job)
	c.JSON(http.StatusOK, gin.H{
		"job":    response,
		"status": response.Status,
	})
}

// ListReloadJobs godoc
// @Summary List reload jobs
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max jobs (default 10, max 100)"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Router /dataset/reload/jobs [get]
func (h *ReloadHandler) ListReloadJobs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	statusFilter := c.Query("status")

	filtered := []*models.Job{}
	for _, job := range h.ReloadService.ListReloadJobs() {
		if statusFilter == "" || string(job.Status) == statusFilter {
			filtered = append(filtered, job)
		}
	}
	total := len(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	jobResponses := make([]JobStatusResponse, 0, len(filtered))
	for _, job := range filtered {
		jobResponses = append(jobResponses, toJobStatus(job))
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": jobResponses,
		"pagination": gin.H{
			"total": total,
			"limit": limit,
		},
	})
}

// CancelReload godoc
// @Summary Cancel a reload job
// @Description Cancelling after the new snapshot was swapped in has no effect on the snapshot
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Param job_id path string true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /dataset/reload/{job_id} [delete]
func (h *ReloadHandler) CancelReload(c *gin.Context) {
	err := h.ReloadService.CancelReload(c.Param("job_id"))
	switch {
	case errors.Is(err, models.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	case errors.Is(err, models.ErrJobFinished):
		c.JSON(http.StatusConflict, gin.H{"error": "Job cannot be cancelled (already finished)"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job cancelled successfully",
	})
}

// GetDatasetInfo godoc
// @Summary Dataset information
// @Description The active snapshot, its load report and recent load history
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DatasetInfo
// @Failure 503 {object} map[string]string
// @Router /dataset/info [get]
func (h *ReloadHandler) GetDatasetInfo(c *gin.Context) {
	info, err := h.ReloadService.Info()
	if errors.Is(err, dataset.ErrNotLoaded) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dataset is not loaded yet"})
		return
	}
	if err != nil {
		logging.Error().Err(err).Msg("failed to read dataset info")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read dataset info"})
		return
	}

	c.JSON(http.StatusOK, info)
}
