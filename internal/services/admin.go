package services

import (
	"database/sql"
	"fmt"
	"runtime"
	"time"

	"github.com/jmagar/movieboard/internal/logging"
	"github.com/jmagar/movieboard/internal/models"
)

// statusTables are counted in the database section of the system status.
var statusTables = []string{"users", "movies", "dataset_loads", "api_logs", "system_config"}

// DocumentCounter reports how many documents a search index holds.
type DocumentCounter interface {
	DocumentCount() (uint64, error)
}

type AdminService struct {
	DB         *sql.DB
	JobManager *models.JobManager
	Reload     *DatasetReloadService
	Index      DocumentCounter
	Version    string
	startTime  time.Time
}

func NewAdminService(db *sql.DB, jobManager *models.JobManager, reload *DatasetReloadService, index DocumentCounter, version string) *AdminService {
	return &AdminService{
		DB:         db,
		JobManager: jobManager,
		Reload:     reload,
		Index:      index,
		Version:    version,
		startTime:  time.Now(),
	}
}

// GetSystemStatus collects database, job, dataset and runtime state and
// scores overall health.
func (s *AdminService) GetSystemStatus() *models.SystemStatus {
	status := &models.SystemStatus{
		Version:     s.Version,
		Uptime:      time.Since(s.startTime).String(),
		Database:    s.getDatabaseStatus(),
		Jobs:        s.getJobSystemStatus(),
		Dataset:     s.getDatasetStatus(),
		Performance: getPerformanceStatus(),
		LastUpdated: time.Now(),
	}

	status.Health = calculateSystemHealth(status)

	switch {
	case status.Health.Score >= 80:
		status.Status = "healthy"
	case status.Health.Score >= 60:
		status.Status = "degraded"
	default:
		status.Status = "unhealthy"
	}

	return status
}

func (s *AdminService) getDatabaseStatus() models.DatabaseStatus {
	status := models.DatabaseStatus{
		RecordCounts: make(map[string]int64),
	}
	if s.DB == nil {
		return status
	}

	start := time.Now()
	err := s.DB.Ping()
	status.ResponseTime = float64(time.Since(start).Microseconds()) / 1000
	status.Connected = err == nil
	if !status.Connected {
		logging.Warn().Err(err).Msg("database ping failed")
		return status
	}

	// Works for both file and in-memory databases.
	var pageCount, pageSize int64
	if s.DB.QueryRow("PRAGMA page_count").Scan(&pageCount) == nil &&
		s.DB.QueryRow("PRAGMA page_size").Scan(&pageSize) == nil {
		status.Size = float64(pageCount*pageSize) / (1024 * 1024)
	}

	status.TableCount = len(statusTables)
	for _, table := range statusTables {
		var count int64
		if err := s.DB.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			logging.Debug().Err(err).Str("table", table).Msg("failed to count records")
			continue
		}
		status.RecordCounts[table] = count
	}

	return status
}

func (s *AdminService) getJobSystemStatus() models.JobSystemStatus {
	var status models.JobSystemStatus
	if s.JobManager == nil {
		return status
	}

	for _, job := range s.JobManager.ListJobs() {
		switch job.Status {
		case models.JobStatusRunning:
			status.Active++
		case models.JobStatusPending:
			status.Pending++
		case models.JobStatusCompleted:
			status.Completed++
		case models.JobStatusFailed:
			status.Failed++
		case models.JobStatusCancelled:
			status.Cancelled++
		}
	}

	if total := status.Completed + status.Failed; total > 0 {
		status.FailureRate = float64(status.Failed) / float64(total) * 100
	}
	return status
}

func (s *AdminService) getDatasetStatus() models.DatasetStatus {
	var status models.DatasetStatus
	if s.Reload == nil {
		return status
	}
	status.Watching = s.Reload.Watching

	ds := s.Reload.Store.Current()
	if ds == nil {
		status.Source = s.Reload.Store.Path()
		return status
	}

	report := ds.Report()
	loadedAt := ds.LoadedAt()
	status.Loaded = true
	status.Source = ds.Source()
	status.Records = ds.Len()
	status.RowsSkipped = report.RowsSkipped
	status.LoadedAt = &loadedAt
	status.Age = time.Since(loadedAt).Round(time.Second).String()
	if report.RowsRead > 0 {
		status.SkipRate = float64(report.RowsSkipped) / float64(report.RowsRead) * 100
	}

	if s.Index != nil {
		if n, err := s.Index.DocumentCount(); err == nil {
			status.Indexed = n
		}
	}
	return status
}

func getPerformanceStatus() models.PerformanceStatus {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return models.PerformanceStatus{
		MemoryUsage: float64(m.Alloc) / (1024 * 1024),
		MemoryTotal: float64(m.Sys) / (1024 * 1024),
		Goroutines:  runtime.NumGoroutine(),
		GCCycles:    m.NumGC,
	}
}

func calculateSystemHealth(status *models.SystemStatus) models.SystemHealth {
	health := models.SystemHealth{
		Issues:          []models.HealthIssue{},
		Metrics:         make(map[string]float64),
		Recommendations: []string{},
	}

	score := 100

	if !status.Dataset.Loaded {
		score -= 40
		health.Issues = append(health.Issues, models.HealthIssue{
			Type:      "critical",
			Component: "dataset",
			Message:   "No dataset snapshot is loaded",
			Severity:  5,
			Action:    "Check the dataset path and trigger a reload",
		})
	} else {
		if status.Dataset.SkipRate > 10 {
			score -= 10
			health.Issues = append(health.Issues, models.HealthIssue{
				Type:      "warning",
				Component: "dataset",
				Message:   "Many dataset rows were skipped while loading",
				Severity:  2,
				Action:    "Review the CSV for malformed rows",
			})
		}
		if status.Dataset.Indexed != uint64(status.Dataset.Records) {
			score -= 10
			health.Issues = append(health.Issues, models.HealthIssue{
				Type:      "warning",
				Component: "search",
				Message:   "Search index is out of sync with the dataset",
				Severity:  2,
				Action:    "Trigger a dataset reload to rebuild the index",
			})
		}
	}

	if !status.Database.Connected {
		score -= 30
		health.Issues = append(health.Issues, models.HealthIssue{
			Type:      "critical",
			Component: "database",
			Message:   "Database connection failed",
			Severity:  5,
			Action:    "Check database file permissions and configuration",
		})
	} else if status.Database.ResponseTime > 100 {
		score -= 10
		health.Issues = append(health.Issues, models.HealthIssue{
			Type:      "warning",
			Component: "database",
			Message:   "Database response time is high",
			Severity:  2,
			Action:    "Prune old request logs",
		})
	}

	if status.Jobs.FailureRate > 20 {
		score -= 15
		health.Issues = append(health.Issues, models.HealthIssue{
			Type:      "error",
			Component: "jobs",
			Message:   "Job failure rate is high",
			Severity:  3,
			Action:    "Review failed reload jobs",
		})
	}

	if status.Performance.MemoryUsage > status.Performance.MemoryTotal*0.8 {
		score -= 10
		health.Issues = append(health.Issues, models.HealthIssue{
			Type:      "warning",
			Component: "performance",
			Message:   "Memory usage is high",
			Severity:  2,
		})
	}

	health.Score = max(score, 0)

	switch {
	case health.Score >= 90:
		health.Status = "excellent"
	case health.Score >= 80:
		health.Status = "good"
	case health.Score >= 60:
		health.Status = "fair"
	case health.Score >= 40:
		health.Status = "poor"
	default:
		health.Status = "critical"
	}

	health.Metrics["database_response_time"] = status.Database.ResponseTime
	health.Metrics["dataset_skip_rate"] = status.Dataset.SkipRate
	health.Metrics["job_failure_rate"] = status.Jobs.FailureRate
	health.Metrics["memory_usage_mb"] = status.Performance.MemoryUsage

	if len(health.Issues) == 0 {
		health.Recommendations = append(health.Recommendations, "System is running optimally")
	} else {
		for _, issue := range health.Issues {
			if issue.Action != "" {
				health.Recommendations = append(health.Recommendations, issue.Action)
			}
		}
	}

	return health
}
