package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jmagar/movieboard/internal/api/middleware"
	"github.com/jmagar/movieboard/internal/database"
	"github.com/jmagar/movieboard/internal/logging"
)

type AuthHandler struct {
	DB        *sql.DB
	JWTSecret string
	TokenTTL  time.Duration
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success   bool           `json:"success"`
	Token     string         `json:"token,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	User      *database.User `json:"user,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func NewAuthHandler(db *sql.DB, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
	}
}

// Login godoc
// @Summary Log in
// @Description Exchange a username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} LoginResponse
// @Failure 401 {object} LoginResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, LoginResponse{
			Success: false,
			Error:   "Invalid request format",
		})
		return
	}

	var user database.User
	var lastLogin sql.NullTime
	err := h.DB.QueryRow(`
		SELECT id, username, email, password_hash, role, active, last_login, created_at, updated_at
		FROM users
		WHERE username = ? AND active = 1
	`, req.Username).Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role,
		&user.Active, &lastLogin, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) || (err == nil && !database.CheckPassword(user.Password, req.Password)) {
		logging.Warn().Str("username", req.Username).Str("client_ip", c.ClientIP()).Msg("failed login")
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
		return
	} else if err != nil {
		logging.Error().Err(err).Msg("failed to look up user")
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Success: false,
			Error:   "Failed to look up user",
		})
		return
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	token, expiresAt, err := middleware.GenerateToken(user.ID, user.Username, user.Role, h.JWTSecret, h.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Success: false,
			Error:   "Failed to generate token",
		})
		return
	}

	if _, err := h.DB.Exec("UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?", user.ID); err != nil {
		// Login still succeeds
		logging.Warn().Err(err).Int("user_id", user.ID).Msg("failed to update last login")
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: &expiresAt,
		User:      &user,
	})
}

// Logout godoc
// @Summary Log out
// @Description Tokens are stateless; clients drop them
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Refresh godoc
// @Summary Refresh a token
// @Description Issue a new token for the holder of a valid one
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} LoginResponse
// @Failure 401 {object} LoginResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	tokenString := c.GetString("token")
	if tokenString == "" {
		tokenString = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	token, expiresAt, err := middleware.RefreshToken(tokenString, h.JWTSecret, h.TokenTTL)
	if err != nil {
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Success: false,
			Error:   "Invalid token",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: &expiresAt,
	})
}

// Verify godoc
// @Summary Verify the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "No user context",
		})
		return
	}

	var user database.User
	err := h.DB.QueryRow(`
		SELECT id, username, email, role, active, created_at, updated_at
		FROM users
		WHERE id = ? AND active = 1
	`, userID).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.Active, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "User not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
