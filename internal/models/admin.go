package models

import (
	"time"
)

type SystemStatus struct {
	Status      string            `json:"status"` // healthy, degraded, unhealthy
	Version     string            `json:"version"`
	Uptime      string            `json:"uptime"`
	Database    DatabaseStatus    `json:"database"`
	Jobs        JobSystemStatus   `json:"jobs"`
	Dataset     DatasetStatus     `json:"dataset"`
	Performance PerformanceStatus `json:"performance"`
	Health      SystemHealth      `json:"health"`
	LastUpdated time.Time         `json:"last_updated"`
}

type DatabaseStatus struct {
	Connected    bool             `json:"connected"`
	Size         float64          `json:"size_mb"`
	TableCount   int              `json:"table_count"`
	RecordCounts map[string]int64 `json:"record_counts"`
	ResponseTime float64          `json:"response_time_ms"`
}

type JobSystemStatus struct {
	Active      int64   `json:"active_jobs"`
	Pending     int64   `json:"pending_jobs"`
	Completed   int64   `json:"completed_jobs"`
	Failed      int64   `json:"failed_jobs"`
	Cancelled   int64   `json:"cancelled_jobs"`
	FailureRate float64 `json:"failure_rate"`
}

type DatasetStatus struct {
	Loaded      bool       `json:"loaded"`
	Source      string     `json:"source"`
	Records     int        `json:"records"`
	RowsSkipped int        `json:"rows_skipped"`
	SkipRate    float64    `json:"skip_rate"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	Age         string     `json:"age,omitempty"`
	Indexed     uint64     `json:"indexed"`
	Watching    bool       `json:"watching"`
}

type PerformanceStatus struct {
	MemoryUsage float64 `json:"memory_usage_mb"`
	MemoryTotal float64 `json:"memory_total_mb"`
	Goroutines  int     `json:"goroutines"`
	GCCycles    uint32  `json:"gc_cycles"`
}

type SystemHealth struct {
	Score           int                `json:"score"`  // 0-100
	Status          string             `json:"status"` // excellent, good, fair, poor, critical
	Issues          []HealthIssue      `json:"issues"`
	Metrics         map[string]float64 `json:"metrics"`
	Recommendations []string           `json:"recommendations"`
}

type HealthIssue struct {
	Type      string `json:"type"` // warning, error, critical
	Component string `json:"component"`
	Message   string `json:"message"`
	Severity  int    `json:"severity"` // 1-5
	Action    string `json:"action,omitempty"`
}
