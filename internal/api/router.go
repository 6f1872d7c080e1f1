// Package api wires the gin router for the movie dashboard service.
package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jmagar/movieboard/docs"
	"github.com/jmagar/movieboard/internal/api/handlers"
	"github.com/jmagar/movieboard/internal/api/middleware"
	"github.com/jmagar/movieboard/internal/catalog"
	"github.com/jmagar/movieboard/internal/config"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/search"
	"github.com/jmagar/movieboard/internal/services"
)

// Version is reported by /health and the API-Version header.
const Version = "1.0.0"

// Dependencies are the services the router exposes.
type Dependencies struct {
	Config      *config.Config
	DB          *sql.DB
	JobManager  *models.JobManager
	Analytics   *services.AnalyticsService
	Reload      *services.DatasetReloadService
	Catalog     *catalog.Manager
	SearchIndex *search.Index
	RateLimiter *middleware.RateLimiter

	// LogRequests appends every request to api_logs.
	LogRequests bool
}

// NewRouter builds the engine with global middleware and all routes.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	authHandler := handlers.NewAuthHandler(deps.DB, cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics, deps.SearchIndex)
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)
	reloadHandler := handlers.NewReloadHandler(deps.Reload)
	var indexCounter services.DocumentCounter
	if deps.SearchIndex != nil {
		indexCounter = deps.SearchIndex
	}
	adminService := services.NewAdminService(deps.DB, deps.JobManager, deps.Reload, indexCounter, Version)
	adminHandler := handlers.NewAdminHandler(deps.DB, deps.JobManager, adminService)

	var logDB *sql.DB
	if deps.LogRequests {
		logDB = deps.DB
	}

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logDB))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.Security.CORSOrigins))

	router.GET("/health", middleware.HealthCheck(Version, func() (bool, gin.H) {
		ds := deps.Analytics.Store.Current()
		if ds == nil {
			return false, gin.H{"loaded": false}
		}
		return true, gin.H{
			"loaded":    true,
			"records":   ds.Len(),
			"loaded_at": ds.LoadedAt(),
		}
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIVersion(Version))
	{
		v1.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Movie Dashboard API v" + Version,
				"docs":    "/swagger/index.html",
			})
		})

		// Authentication routes (no auth required)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(deps.RateLimiter))
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(cfg.Security.JWTSecret))
		protected.Use(middleware.RateLimit(deps.RateLimiter))
		protected.Use(middleware.Timeout(cfg.Server.WriteTimeout))
		{
			protected.GET("/auth/verify", authHandler.Verify)
			protected.POST("/auth/refresh", authHandler.Refresh)

			movies := protected.Group("/movies")
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

			catalogGroup := protected.Group("/catalog")
			{
				catalogGroup.GET("/movies", catalogHandler.GetMovies)
				catalogGroup.GET("/movies/:id", catalogHandler.GetMovie)
				catalogGroup.GET("/stats", catalogHandler.GetStats)
			}

			datasetGroup := protected.Group("/dataset")
			datasetGroup.Use(middleware.NoCache())
			{
				datasetGroup.GET("/info", reloadHandler.GetDatasetInfo)
				datasetGroup.GET("/reload/status/:job_id", reloadHandler.GetReloadStatus)
				datasetGroup.GET("/reload/jobs", reloadHandler.ListReloadJobs)

				// Reloads touch shared state
				datasetGroup.POST("/reload", middleware.RequireRole("admin"), reloadHandler.StartReload)
				datasetGroup.DELETE("/reload/:job_id", middleware.RequireRole("admin"), reloadHandler.CancelReload)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.POST("/users", adminHandler.CreateUser)
				admin.GET("/users", adminHandler.GetUsers)
				admin.GET("/audit", adminHandler.GetAuditLogs)
				admin.GET("/jobs", adminHandler.GetJobs)
				admin.GET("/status", adminHandler.GetSystemStatus)
				admin.POST("/maintenance/cleanup", adminHandler.RunCleanup)
			}
		}
	}

	return router
}
