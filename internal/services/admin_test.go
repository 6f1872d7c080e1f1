package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmagar/movieboard/internal/models"
)

func issueComponents(h models.SystemHealth) []string {
	var components []string
	for _, issue := range h.Issues {
		components = append(components, issue.Component)
	}
	return components
}

func TestAdminService_GetSystemStatus(t *testing.T) {
	f := setupReload(t)
	admin := NewAdminService(f.db, f.svc.JobManager, f.svc, f.index, "1.2.3")

	// Nothing loaded yet
	status := admin.GetSystemStatus()
	assert.Equal(t, "1.2.3", status.Version)
	assert.True(t, status.Database.Connected)
	assert.False(t, status.Dataset.Loaded)
	assert.Equal(t, f.path, status.Dataset.Source)
	assert.Contains(t, issueComponents(status.Health), "dataset")
	assert.LessOrEqual(t, status.Health.Score, 60)

	_, err := f.svc.ReloadNow(context.Background(), TriggerStartup)
	require.NoError(t, err)

	status = admin.GetSystemStatus()
	assert.True(t, status.Dataset.Loaded)
	assert.Equal(t, 2, status.Dataset.Records)
	assert.Equal(t, 1, status.Dataset.RowsSkipped)
	assert.Equal(t, uint64(2), status.Dataset.Indexed)
	assert.Greater(t, status.Dataset.SkipRate, 10.0)
	assert.NotNil(t, status.Dataset.LoadedAt)

	assert.Equal(t, int64(2), status.Database.RecordCounts["movies"])
	assert.Equal(t, int64(1), status.Database.RecordCounts["dataset_loads"])
	assert.Greater(t, status.Database.Size, 0.0)

	assert.NotContains(t, issueComponents(status.Health), "search")
	assert.Greater(t, status.Performance.Goroutines, 0)
	assert.NotEmpty(t, status.Health.Recommendations)
}

func TestAdminService_JobFailureRate(t *testing.T) {
	jm := models.NewJobManager()
	for _, st := range []models.JobStatus{models.JobStatusCompleted, models.JobStatusFailed, models.JobStatusFailed, models.JobStatusPending} {
		job := jm.CreateJob(models.JobTypeDatasetReload)
		require.NoError(t, jm.UpdateJob(job.ID, func(j *models.Job) { j.Status = st }))
	}

	admin := NewAdminService(nil, jm, nil, nil, "test")
	status := admin.GetSystemStatus()

	assert.Equal(t, int64(1), status.Jobs.Completed)
	assert.Equal(t, int64(2), status.Jobs.Failed)
	assert.Equal(t, int64(1), status.Jobs.Pending)
	assert.InDelta(t, 66.67, status.Jobs.FailureRate, 0.01)
	assert.Contains(t, issueComponents(status.Health), "jobs")
	assert.Contains(t, issueComponents(status.Health), "database")
	assert.Equal(t, "unhealthy", status.Status)
}
