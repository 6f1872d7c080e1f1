package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmagar/movieboard/internal/database"
	"github.com/jmagar/movieboard/internal/logging"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/services"
)

type AdminHandler struct {
	DB           *sql.DB
	JobManager   *models.JobManager
	AdminService *services.AdminService
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

type CleanupRequest struct {
	JobMaxAgeHours int `json:"job_max_age_hours" binding:"omitempty,gte=0"`
	LogMaxAgeDays  int `json:"log_max_age_days" binding:"omitempty,gte=0"`
}

func NewAdminHandler(db *sql.DB, jobManager *models.JobManager, adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		DB:           db,
		JobManager:   jobManager,
		AdminService: adminService,
	}
}

// GetSystemStatus godoc
// @Summary System status
// @Description Database, job, dataset and runtime state with a health score
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SystemStatus
// @Router /admin/status [get]
func (h *AdminHandler) GetSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.AdminService.GetSystemStatus())
}

// CreateUser godoc
// @Summary Create a dashboard user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "New user"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format: " + err.Error(),
		})
		return
	}
	if req.Role == "" {
		req.Role = "user"
	}

	id, err := database.CreateUser(h.DB, req.Username, req.Email, req.Password, req.Role)
	if errors.Is(err, database.ErrUserExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}
	if err != nil {
		logging.Error().Err(err).Str("username", req.Username).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	logging.Info().
		Int64("user_id", id).
		Str("username", req.Username).
		Str("role", req.Role).
		Str("created_by", c.GetString("username")).
		Msg("user created")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user_id": id,
		"message": "User created successfully",
	})
}

// GetUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param role query string false "Filter by role"
// @Success 200 {object} PaginatedResponse
// @Router /admin/users [get]
func (h *AdminHandler) GetUsers(c *gin.Context) {
	params := PaginationParams{}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	validatePagination(&params)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	if role := c.Query("role"); role != "" {
		whereClause += " AND role = ?"
		args = append(args, role)
	}

	var total int64
	if err := h.DB.QueryRow("SELECT COUNT(*) FROM users "+whereClause, args...).Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, username, email, role, active, last_login, created_at, updated_at
		FROM users `+whereClause+`
		ORDER BY id
		LIMIT ? OFFSET ?
	`, append(args, params.PageSize, params.Offset)...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	defer rows.Close()

	users := []database.User{}
	for rows.Next() {
		var user database.User
		var lastLogin sql.NullTime
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role,
			&user.Active, &lastLogin, &user.CreatedAt, &user.UpdatedAt); err != nil {
			logging.Warn().Err(err).Msg("failed to scan user")
			continue
		}
		if lastLogin.Valid {
			user.LastLogin = &lastLogin.Time
		}
		users = append(users, user)
	}

	c.JSON(http.StatusOK, createPaginatedResponse(users, params, total))
}

// GetAuditLogs godoc
// @Summary Recent API requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (default 50, max 500)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/audit [get]
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}

	logs, err := database.RecentAPILogs(h.DB, limit)
	if err != nil {
		logging.Error().Err(err).Msg("failed to query api logs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query audit logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"limit": limit,
	})
}

// RunCleanup godoc
// @Summary Prune finished jobs and old request logs
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param options body CleanupRequest false "Retention"
// @Success 200 {object} map[string]interface{}
// @Router /admin/maintenance/cleanup [post]
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	req := CleanupRequest{JobMaxAgeHours: 24, LogMaxAgeDays: 30}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	job := h.JobManager.CreateJob(models.JobTypeMaintenance)
	startedAt := time.Now()
	h.JobManager.UpdateJob(job.ID, func(j *models.Job) {
		j.Status = models.JobStatusRunning
		j.StartedAt = startedAt
		j.Message = "Pruning finished jobs and request logs"
	})

	jobsRemoved := h.JobManager.CleanupOldJobs(time.Duration(req.JobMaxAgeHours) * time.Hour)
	logsRemoved, err := database.PruneAPILogs(h.DB, time.Now().AddDate(0, 0, -req.LogMaxAgeDays))

	now := time.Now()
	h.JobManager.UpdateJob(job.ID, func(j *models.Job) {
		j.CompletedAt = &now
		j.Progress = 100
		if err != nil {
			j.Status = models.JobStatusFailed
			j.Error = err.Error()
			return
		}
		j.Status = models.JobStatusCompleted
		j.Message = "Cleanup completed"
		j.Result = gin.H{"jobs_removed": jobsRemoved, "logs_removed": logsRemoved}
	})

	if err != nil {
		logging.Error().Err(err).Str("job_id", job.ID).Msg("failed to prune api logs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prune api logs"})
		return
	}

	logging.Info().
		Str("job_id", job.ID).
		Int("jobs_removed", jobsRemoved).
		Int64("logs_removed", logsRemoved).
		Dur("duration", now.Sub(startedAt)).
		Msg("maintenance cleanup finished")

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"job_id":       job.ID,
		"jobs_removed": jobsRemoved,
		"logs_removed": logsRemoved,
	})
}

// GetJobs godoc
// @Summary List background jobs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/jobs [get]
func (h *AdminHandler) GetJobs(c *gin.Context) {
	jobs := h.JobManager.ListJobs()
	responses := make([]JobStatusResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, toJobStatus(job))
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  responses,
		"total": len(responses),
	})
}
