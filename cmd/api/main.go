// @title Movie Dashboard API
// @version 1.0.0
// @description REST API for exploring a movie popularity dataset: ranked movies, popularity trends, genre counts, chart images, title search and dataset reloads.
// @termsOfService https://example.com/terms

// @contact.name Movie Dashboard API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmagar/movieboard/internal/api"
	"github.com/jmagar/movieboard/internal/api/middleware"
	"github.com/jmagar/movieboard/internal/catalog"
	"github.com/jmagar/movieboard/internal/config"
	"github.com/jmagar/movieboard/internal/database"
	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/logging"
	"github.com/jmagar/movieboard/internal/models"
	"github.com/jmagar/movieboard/internal/search"
	"github.com/jmagar/movieboard/internal/services"
)

const (
	jobCleanupInterval = time.Hour
	jobMaxAge          = 24 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Initialize(cfg.Database.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("Failed to initialize database")
	}
	defer db.Close()

	if cfg.Security.AdminUsername != "" && cfg.Security.AdminPassword != "" {
		if err := database.EnsureAdmin(db, cfg.Security.AdminUsername, cfg.Security.AdminPassword); err != nil {
			logging.Fatal().Err(err).Msg("Failed to provision admin user")
		}
	}

	index, err := search.NewIndex()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create search index")
	}
	defer index.Close()

	store := dataset.NewStore(cfg.Dataset.Path)
	jobManager := models.NewJobManager()
	catalogManager := catalog.NewManager(db)
	reloadService := services.NewDatasetReloadService(db, jobManager, store, catalogManager, index)
	analyticsService := services.NewAnalyticsService(store, cfg.Dataset.RankLimits, cfg.Dataset.DefaultRankLimit)

	// The dashboard has nothing to serve without an initial snapshot.
	if _, err := reloadService.ReloadNow(ctx, services.TriggerStartup); err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("Failed to load dataset")
	}

	if cfg.Dataset.Watch {
		watcher, err := dataset.NewWatcher(store, cfg.Dataset.WatchDebounce, dataset.WithReloadFunc(func() error {
			_, err := reloadService.ReloadNow(ctx, services.TriggerWatcher)
			return err
		}))
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to watch dataset file")
		}
		reloadService.Watching = true
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logging.Error().Err(err).Msg("Dataset watcher stopped")
			}
		}()
		logging.Info().Str("path", cfg.Dataset.Path).Dur("debounce", cfg.Dataset.WatchDebounce).Msg("Watching dataset file")
	}

	limiter := middleware.NewRateLimiter(cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst)
	defer limiter.Stop()

	router := api.NewRouter(api.Dependencies{
		Config:      cfg,
		DB:          db,
		JobManager:  jobManager,
		Analytics:   analyticsService,
		Reload:      reloadService,
		Catalog:     catalogManager,
		SearchIndex: index,
		RateLimiter: limiter,
		LogRequests: true,
	})

	go cleanupJobs(ctx, jobManager)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logging.Info().
			Str("port", cfg.Server.Port).
			Str("environment", cfg.Server.Environment).
			Int("movies", store.Current().Len()).
			Msg("API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func cleanupJobs(ctx context.Context, jm *models.JobManager) {
	ticker := time.NewTicker(jobCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := jm.CleanupOldJobs(jobMaxAge); n > 0 {
				logging.Debug().Int("removed", n).Msg("Cleaned up finished jobs")
			}
		}
	}
}
