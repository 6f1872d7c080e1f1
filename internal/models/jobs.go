package models

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Finished reports whether the status is terminal.
func (s JobStatus) Finished() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

type JobType string

const (
	JobTypeDatasetReload JobType = "dataset_reload"
	JobTypeMaintenance   JobType = "maintenance"
)

type Job struct {
	ID          string     `json:"id"`
	Type        JobType    `json:"type"`
	Status      JobStatus  `json:"status"`
	Progress    int        `json:"progress"` // 0-100
	Message     string     `json:"message"`
	Error       string     `json:"error,omitempty"`
	Result      any        `json:"result,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Internal fields
	Cancel chan bool `json:"-"`
}

// IsCancellationRequested checks if a cancellation has been requested for this job
func (j *Job) IsCancellationRequested() bool {
	select {
	case <-j.Cancel:
		// Keep the signal visible to later checks.
		select {
		case j.Cancel <- true:
		default:
		}
		return true
	default:
		return false
	}
}

type JobManager struct {
	jobs map[string]*Job
	mu   sync.RWMutex
}

func NewJobManager() *JobManager {
	return &JobManager{
		jobs: make(map[string]*Job),
	}
}

// CreateJob registers a pending job and returns a copy of it. The copy
// shares the Cancel channel with the stored job.
func (jm *JobManager) CreateJob(jobType JobType) *Job {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	return jm.createLocked(jobType)
}

// CreateJobUnlessActive creates a job of the given type unless one is still
// pending or running. When it is, the active job is returned and created is
// false. Both results are copies.
func (jm *JobManager) CreateJobUnlessActive(jobType JobType) (job *Job, created bool) {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	for _, existing := range jm.jobs {
		if existing.Type == jobType && !existing.Status.Finished() {
			cp := *existing
			return &cp, false
		}
	}
	return jm.createLocked(jobType), true
}

func (jm *JobManager) createLocked(jobType JobType) *Job {
	job := &Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		Status:    JobStatusPending,
		Progress:  0,
		CreatedAt: time.Now(),
		Cancel:    make(chan bool, 1),
	}

	jm.jobs[job.ID] = job
	cp := *job
	return &cp
}

// GetJob returns a copy of the job so callers can serialize it while the
// worker keeps updating the original.
func (jm *JobManager) GetJob(id string) (*Job, bool) {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	job, exists := jm.jobs[id]
	if !exists {
		return nil, false
	}
	cp := *job
	return &cp, true
}

func (jm *JobManager) UpdateJob(id string, updates func(*Job)) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job, exists := jm.jobs[id]
	if !exists {
		return ErrJobNotFound
	}

	updates(job)
	return nil
}

// ListJobs returns copies of all jobs, newest first, optionally filtered by type.
func (jm *JobManager) ListJobs(types ...JobType) []*Job {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	jobs := make([]*Job, 0, len(jm.jobs))
	for _, job := range jm.jobs {
		if len(types) > 0 && !slices.Contains(types, job.Type) {
			continue
		}
		cp := *job
		jobs = append(jobs, &cp)
	}

	slices.SortFunc(jobs, func(a, b *Job) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return jobs
}

// CancelJob signals the worker and marks the job cancelled. Finished jobs
// return ErrJobFinished.
func (jm *JobManager) CancelJob(id string) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job, exists := jm.jobs[id]
	if !exists {
		return ErrJobNotFound
	}
	if job.Status.Finished() {
		return ErrJobFinished
	}

	select {
	case job.Cancel <- true:
	default:
		// Already signalled
	}
	now := time.Now()
	job.Status = JobStatusCancelled
	job.CompletedAt = &now

	return nil
}

// CleanupOldJobs drops finished jobs created before maxAge ago
func (jm *JobManager) CleanupOldJobs(maxAge time.Duration) int {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for id, job := range jm.jobs {
		if job.CreatedAt.Before(cutoff) && job.Status.Finished() {
			delete(jm.jobs, id)
			cleaned++
		}
	}

	return cleaned
}

// Errors
var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobFinished = errors.New("job already finished")
)
