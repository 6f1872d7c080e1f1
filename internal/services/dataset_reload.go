package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmagar/movieboard/internal/database"
	"github.com/jmagar/movieboard/internal/dataset"
	"github.com/jmagar/movieboard/internal/logging"
	"github.com/jmagar/movieboard/internal/metrics"
	"github.com/jmagar/movieboard/internal/models"
)

// Reload triggers recorded in dataset_loads.
const (
	TriggerStartup = "startup"
	TriggerAPI     = "api"
	TriggerWatcher = "watcher"
	TriggerCLI     = "cli"
)

// ErrReloadInProgress is returned when a reload job is already active.
var ErrReloadInProgress = errors.New("dataset reload already in progress")

// Mirror receives every swapped-in snapshot.
type Mirror interface {
	Replace(ctx context.Context, ds *dataset.Dataset) (int, error)
}

// Indexer rebuilds a search index from a snapshot.
type Indexer interface {
	Rebuild(ds *dataset.Dataset) error
}

type DatasetReloadService struct {
	DB         *sql.DB
	JobManager *models.JobManager
	Store      *dataset.Store
	Mirror     Mirror
	Indexer    Indexer
	Watching   bool

	mu sync.Mutex // serializes reload and apply
}

func NewDatasetReloadService(db *sql.DB, jobManager *models.JobManager, store *dataset.Store, mirror Mirror, indexer Indexer) *DatasetReloadService {
	return &DatasetReloadService{
		DB:         db,
		JobManager: jobManager,
		Store:      store,
		Mirror:     mirror,
		Indexer:    indexer,
	}
}

// StartReload creates a reload job and runs it in the background. If a
// reload is already pending or running, that job is returned with
// ErrReloadInProgress. The returned job is a snapshot taken at creation.
func (s *DatasetReloadService) StartReload(trigger string) (*models.Job, error) {
	job, created := s.JobManager.CreateJobUnlessActive(models.JobTypeDatasetReload)
	if !created {
		return job, ErrReloadInProgress
	}

	// The worker gets its own copy so the caller's snapshot is never written.
	worker := *job
	go s.runReload(&worker, trigger)

	return job, nil
}

func (s *DatasetReloadService) runReload(job *models.Job, trigger string) {
	startTime := time.Now()

	if err := s.JobManager.UpdateJob(job.ID, func(j *models.Job) {
		if j.Status == models.JobStatusCancelled {
			return
		}
		j.Status = models.JobStatusRunning
		j.StartedAt = startTime
		j.Progress = 10
		j.Message = "Parsing dataset..."
	}); err != nil {
		logging.Error().Err(err).Str("job_id", job.ID).Msg("failed to update job status")
		return
	}

	result, err := s.reload(context.Background(), trigger, func() bool {
		return !job.IsCancellationRequested()
	}, func(progress int, message string) {
		s.progress(job.ID, progress, message)
	})

	completedAt := time.Now()
	switch {
	case errors.Is(err, dataset.ErrReloadAborted):
		logging.Info().Str("job_id", job.ID).Msg("dataset reload cancelled before swap")
		if updateErr := s.JobManager.UpdateJob(job.ID, func(j *models.Job) {
			j.Status = models.JobStatusCancelled
			j.Message = "Reload cancelled; previous snapshot kept"
			j.CompletedAt = &completedAt
		}); updateErr != nil {
			logging.Error().Err(updateErr).Str("job_id", job.ID).Msg("failed to update job status")
		}
	case err != nil:
		if updateErr := s.JobManager.UpdateJob(job.ID, func(j *models.Job) {
			j.Status = models.JobStatusFailed
			j.Error = err.Error()
			j.Message = "Dataset reload failed"
			j.CompletedAt = &completedAt
		}); updateErr != nil {
			logging.Error().Err(updateErr).Str("job_id", job.ID).Msg("failed to update job status")
		}
	default:
		if updateErr := s.JobManager.UpdateJob(job.ID, func(j *models.Job) {
			j.Status = models.JobStatusCompleted
			j.Progress = 100
			j.Message = fmt.Sprintf("Reload completed: %d movies kept, %d rows skipped", result.RowsKept, result.RowsSkipped)
			j.Result = result
			j.CompletedAt = &completedAt
		}); updateErr != nil {
			logging.Error().Err(updateErr).Str("job_id", job.ID).Msg("failed to update job status")
		}
	}
}

func (s *DatasetReloadService) progress(jobID string, progress int, message string) {
	if err := s.JobManager.UpdateJob(jobID, func(j *models.Job) {
		if j.Status.Finished() {
			return
		}
		j.Progress = progress
		j.Message = message
	}); err != nil {
		logging.Warn().Err(err).Str("job_id", jobID).Msg("failed to update job progress")
	}
}

// ReloadNow reloads the source file synchronously. Used by the file watcher
// and the CLI.
func (s *DatasetReloadService) ReloadNow(ctx context.Context, trigger string) (*models.ReloadResult, error) {
	return s.reload(ctx, trigger, func() bool { return true }, nil)
}

func (s *DatasetReloadService) reload(ctx context.Context, trigger string, commit func() bool, progress func(int, string)) (*models.ReloadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	ds, err := s.Store.ReloadIf(commit)
	if err != nil {
		status := "failed"
		if errors.Is(err, dataset.ErrReloadAborted) {
			status = "cancelled"
		}
		s.recordLoad(models.DatasetLoad{
			Source:     s.Store.Path(),
			Trigger:    trigger,
			DurationMS: time.Since(start).Milliseconds(),
			Status:     status,
			Error:      err.Error(),
		})
		metrics.RecordDatasetReload(trigger, time.Since(start), err)
		return nil, err
	}

	result, err := s.apply(ctx, ds, trigger, start, progress)
	metrics.RecordDatasetReload(trigger, time.Since(start), err)
	return result, err
}

// Apply mirrors and indexes a snapshot that is already active in the store,
// then records the load.
func (s *DatasetReloadService) Apply(ctx context.Context, ds *dataset.Dataset, trigger string) (*models.ReloadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, ds, trigger, time.Now(), nil)
}

func (s *DatasetReloadService) apply(ctx context.Context, ds *dataset.Dataset, trigger string, start time.Time, progress func(int, string)) (*models.ReloadResult, error) {
	if progress == nil {
		progress = func(int, string) {}
	}
	report := ds.Report()
	result := &models.ReloadResult{
		Source:      ds.Source(),
		RowsRead:    report.RowsRead,
		RowsKept:    report.RowsKept,
		RowsSkipped: report.RowsSkipped,
	}
	metrics.RecordDatasetLoaded(report.RowsKept, report.RowsSkipped)

	fail := func(err error) (*models.ReloadResult, error) {
		s.recordLoad(models.DatasetLoad{
			Source:      ds.Source(),
			Trigger:     trigger,
			RowsRead:    report.RowsRead,
			RowsKept:    report.RowsKept,
			RowsSkipped: report.RowsSkipped,
			DurationMS:  time.Since(start).Milliseconds(),
			Status:      "failed",
			Error:       err.Error(),
		})
		return nil, err
	}

	if s.Mirror != nil {
		progress(50, "Mirroring movies into the catalog...")
		n, err := s.Mirror.Replace(ctx, ds)
		if err != nil {
			return fail(fmt.Errorf("failed to mirror dataset: %w", err))
		}
		result.Mirrored = n
	}

	if s.Indexer != nil {
		progress(75, "Rebuilding search index...")
		if err := s.Indexer.Rebuild(ds); err != nil {
			return fail(fmt.Errorf("failed to rebuild search index: %w", err))
		}
		result.Indexed = ds.Len()
	}

	progress(90, "Recording load...")
	s.recordLoad(models.DatasetLoad{
		Source:      ds.Source(),
		Trigger:     trigger,
		RowsRead:    report.RowsRead,
		RowsKept:    report.RowsKept,
		RowsSkipped: report.RowsSkipped,
		DurationMS:  time.Since(start).Milliseconds(),
		Status:      "completed",
	})
	if err := s.setLastReloadTime(time.Now()); err != nil {
		logging.Warn().Err(err).Msg("failed to update last reload time")
	}

	logging.Info().
		Str("trigger", trigger).
		Str("source", ds.Source()).
		Int("rows_kept", report.RowsKept).
		Int("mirrored", result.Mirrored).
		Int("indexed", result.Indexed).
		Msg("dataset applied")
	return result, nil
}

func (s *DatasetReloadService) recordLoad(load models.DatasetLoad) {
	if s.DB == nil {
		return
	}
	if _, err := database.RecordDatasetLoad(s.DB, load); err != nil {
		logging.Warn().Err(err).Msg("failed to record dataset load")
	}
}

func (s *DatasetReloadService) getLastReloadTime() (*string, error) {
	value, ok, err := database.GetConfigValue(s.DB, database.ConfigLastDatasetReload)
	if err != nil || !ok {
		return nil, err
	}
	return &value, nil
}

func (s *DatasetReloadService) setLastReloadTime(t time.Time) error {
	if s.DB == nil {
		return nil
	}
	return database.SetConfigValue(s.DB, database.ConfigLastDatasetReload, t.Format(time.RFC3339), "Last dataset reload timestamp")
}

// GetReloadStatus returns a job by ID.
func (s *DatasetReloadService) GetReloadStatus(jobID string) (*models.Job, error) {
	job, ok := s.JobManager.GetJob(jobID)
	if !ok || job.Type != models.JobTypeDatasetReload {
		return nil, models.ErrJobNotFound
	}
	return job, nil
}

// ListReloadJobs returns all reload jobs, newest first.
func (s *DatasetReloadService) ListReloadJobs() []*models.Job {
	return s.JobManager.ListJobs(models.JobTypeDatasetReload)
}

// CancelReload requests cancellation of a reload job.
func (s *DatasetReloadService) CancelReload(jobID string) error {
	if _, err := s.GetReloadStatus(jobID); err != nil {
		return err
	}
	return s.JobManager.CancelJob(jobID)
}

// Info describes the active snapshot and recent load history.
func (s *DatasetReloadService) Info() (*models.DatasetInfo, error) {
	ds, err := s.Store.Snapshot()
	if err != nil {
		return nil, err
	}

	info := &models.DatasetInfo{
		Source:      ds.Source(),
		Records:     ds.Len(),
		LoadedAt:    ds.LoadedAt(),
		Report:      ds.Report(),
		RecentLoads: []models.DatasetLoad{},
		Watching:    s.Watching,
	}
	for _, job := range s.ListReloadJobs() {
		if !job.Status.Finished() {
			info.ActiveReloadJobs++
		}
	}

	if s.DB != nil {
		if info.LastReload, err = s.getLastReloadTime(); err != nil {
			return nil, fmt.Errorf("failed to read last reload time: %w", err)
		}
		if info.RecentLoads, err = database.RecentDatasetLoads(s.DB, 10); err != nil {
			return nil, err
		}
	}
	return info, nil
}
