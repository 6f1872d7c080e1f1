package models

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobManager_CreateJob(t *testing.T) {
	jm := NewJobManager()

	job := jm.CreateJob(JobTypeDatasetReload)

	assert.NotEmpty(t, job.ID)
	_, err := uuid.Parse(job.ID)
	assert.NoError(t, err, "job IDs are UUIDs")
	assert.Equal(t, JobTypeDatasetReload, job.Type)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.NotNil(t, job.Cancel)
	assert.WithinDuration(t, time.Now(), job.CreatedAt, time.Second)

	// Verify job is stored in manager
	retrievedJob, exists := jm.GetJob(job.ID)
	require.True(t, exists)
	assert.Equal(t, job.ID, retrievedJob.ID)

	other := jm.CreateJob(JobTypeDatasetReload)
	assert.NotEqual(t, job.ID, other.ID)
}

func TestJobManager_CreateJobReturnsCopy(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobTypeDatasetReload)

	job.Status = JobStatusFailed
	stored, exists := jm.GetJob(job.ID)
	require.True(t, exists)
	assert.Equal(t, JobStatusPending, stored.Status)

	// Cancellation still reaches holders of the copy
	require.NoError(t, jm.CancelJob(job.ID))
	assert.True(t, job.IsCancellationRequested())
}

func TestJobManager_CreateJobUnlessActive(t *testing.T) {
	jm := NewJobManager()

	first, created := jm.CreateJobUnlessActive(JobTypeDatasetReload)
	require.True(t, created)
	assert.Equal(t, JobStatusPending, first.Status)

	active, created := jm.CreateJobUnlessActive(JobTypeDatasetReload)
	assert.False(t, created)
	assert.Equal(t, first.ID, active.ID)

	// Other types are independent
	other, created := jm.CreateJobUnlessActive(JobTypeMaintenance)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)

	require.NoError(t, jm.UpdateJob(first.ID, func(j *Job) { j.Status = JobStatusCompleted }))
	next, created := jm.CreateJobUnlessActive(JobTypeDatasetReload)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, next.ID)
}

func TestJobManager_CreateJobUnlessActiveConcurrent(t *testing.T) {
	jm := NewJobManager()

	const callers = 32
	var wg sync.WaitGroup
	results := make([]bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = jm.CreateJobUnlessActive(JobTypeDatasetReload)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, ok := range results {
		if ok {
			created++
		}
	}
	assert.Equal(t, 1, created)
	assert.Len(t, jm.ListJobs(JobTypeDatasetReload), 1)
}

func TestJobManager_GetJob(t *testing.T) {
	jm := NewJobManager()

	// Test getting non-existent job
	job, exists := jm.GetJob("non-existent")
	assert.False(t, exists)
	assert.Nil(t, job)

	// Test getting existing job
	createdJob := jm.CreateJob(JobTypeMaintenance)
	retrievedJob, exists := jm.GetJob(createdJob.ID)
	require.True(t, exists)
	assert.Equal(t, createdJob.ID, retrievedJob.ID)
	assert.Equal(t, JobTypeMaintenance, retrievedJob.Type)

	// Returned jobs are copies
	retrievedJob.Message = "mutated"
	again, _ := jm.GetJob(createdJob.ID)
	assert.Empty(t, again.Message)
}

func TestJobManager_UpdateJob(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobTypeDatasetReload)

	// Test updating job status
	err := jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = JobStatusRunning
		j.Progress = 50
		j.Message = "Parsing dataset"
	})
	assert.NoError(t, err)

	updatedJob, exists := jm.GetJob(job.ID)
	require.True(t, exists)
	assert.Equal(t, JobStatusRunning, updatedJob.Status)
	assert.Equal(t, 50, updatedJob.Progress)
	assert.Equal(t, "Parsing dataset", updatedJob.Message)

	// Test updating non-existent job
	err = jm.UpdateJob("non-existent", func(j *Job) {
		j.Status = JobStatusRunning
	})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobManager_CancelJob(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobTypeDatasetReload)

	// Test canceling job
	err := jm.CancelJob(job.ID)
	assert.NoError(t, err)

	canceledJob, exists := jm.GetJob(job.ID)
	require.True(t, exists)
	assert.Equal(t, JobStatusCancelled, canceledJob.Status)
	assert.NotNil(t, canceledJob.CompletedAt)

	// Cancelling twice reports the job as finished
	assert.ErrorIs(t, jm.CancelJob(job.ID), ErrJobFinished)

	// Test canceling non-existent job
	err = jm.CancelJob("non-existent")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobManager_CancelCompletedJob(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobTypeDatasetReload)
	require.NoError(t, jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = JobStatusCompleted
	}))

	assert.ErrorIs(t, jm.CancelJob(job.ID), ErrJobFinished)
	assert.False(t, job.IsCancellationRequested())
}

func TestJobManager_ListJobs(t *testing.T) {
	jm := NewJobManager()

	// Create various jobs
	job1 := jm.CreateJob(JobTypeDatasetReload)
	job2 := jm.CreateJob(JobTypeMaintenance)
	job3 := jm.CreateJob(JobTypeDatasetReload)

	// Update one job to running
	jm.UpdateJob(job2.ID, func(j *Job) {
		j.Status = JobStatusRunning
		j.Progress = 25
		j.Message = "Importing..."
	})

	jobs := jm.ListJobs()
	assert.Equal(t, 3, len(jobs))

	// Check that all jobs are present
	jobIDs := make(map[string]bool)
	for _, job := range jobs {
		jobIDs[job.ID] = true
	}

	assert.True(t, jobIDs[job1.ID])
	assert.True(t, jobIDs[job2.ID])
	assert.True(t, jobIDs[job3.ID])

	for i := 1; i < len(jobs); i++ {
		assert.False(t, jobs[i-1].CreatedAt.Before(jobs[i].CreatedAt), "newest first")
	}

	reloads := jm.ListJobs(JobTypeDatasetReload)
	assert.Len(t, reloads, 2)
}

func TestJobManager_CleanupOldJobs(t *testing.T) {
	jm := NewJobManager()

	// Create old completed job by manually setting CreatedAt
	oldJob := jm.CreateJob(JobTypeDatasetReload)
	jm.UpdateJob(oldJob.ID, func(j *Job) {
		j.Status = JobStatusCompleted
		j.CreatedAt = time.Now().Add(-25 * time.Hour) // Make it old
	})

	// Old but still running jobs are kept
	running := jm.CreateJob(JobTypeDatasetReload)
	jm.UpdateJob(running.ID, func(j *Job) {
		j.Status = JobStatusRunning
		j.CreatedAt = time.Now().Add(-25 * time.Hour)
	})

	// Create recent job (will have current CreatedAt)
	recentJob := jm.CreateJob(JobTypeDatasetReload)

	// Cleanup jobs older than 24 hours
	cleanedCount := jm.CleanupOldJobs(24 * time.Hour)

	assert.Equal(t, 1, cleanedCount)

	// Old job should be removed
	_, exists := jm.GetJob(oldJob.ID)
	assert.False(t, exists)

	_, exists = jm.GetJob(running.ID)
	assert.True(t, exists)

	// Recent job should still exist
	_, exists = jm.GetJob(recentJob.ID)
	assert.True(t, exists)
}

func TestJob_IsCancellationRequested(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobTypeDatasetReload)

	// Initially no cancellation requested
	assert.False(t, job.IsCancellationRequested())

	// Cancel the job synchronously
	err := jm.CancelJob(job.ID)
	assert.NoError(t, err)

	// Now cancellation should be requested, and stay requested
	assert.True(t, job.IsCancellationRequested())
	assert.True(t, job.IsCancellationRequested())
}

func TestJobStatus_Finished(t *testing.T) {
	assert.False(t, JobStatusPending.Finished())
	assert.False(t, JobStatusRunning.Finished())
	assert.True(t, JobStatusCompleted.Finished())
	assert.True(t, JobStatusFailed.Finished())
	assert.True(t, JobStatusCancelled.Finished())
}
