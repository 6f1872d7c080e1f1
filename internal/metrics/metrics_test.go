package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/movies/top", "200"))

	RecordAPIRequest("GET", "/api/v1/movies/top", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/movies/top", "200"))
	assert.Equal(t, before+1, after)
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	assert.Equal(t, before+1, testutil.ToFloat64(APIActiveRequests))
	TrackActiveRequest(false)
	assert.Equal(t, before, testutil.ToFloat64(APIActiveRequests))
}

func TestObserveQuery(t *testing.T) {
	before := testutil.ToFloat64(QueryEmptyResults.WithLabelValues("top"))

	ObserveQuery("top", time.Now(), false)
	assert.Equal(t, before, testutil.ToFloat64(QueryEmptyResults.WithLabelValues("top")))

	ObserveQuery("top", time.Now(), true)
	assert.Equal(t, before+1, testutil.ToFloat64(QueryEmptyResults.WithLabelValues("top")))
}

func TestRecordDataset(t *testing.T) {
	RecordDatasetLoaded(120, 3)
	assert.Equal(t, 120.0, testutil.ToFloat64(DatasetRecords))
	assert.Equal(t, 3.0, testutil.ToFloat64(DatasetSkippedRows))

	failures := testutil.ToFloat64(DatasetReloads.WithLabelValues("watcher", "failure"))
	RecordDatasetReload("watcher", time.Millisecond, errors.New("parse error"))
	assert.Equal(t, failures+1, testutil.ToFloat64(DatasetReloads.WithLabelValues("watcher", "failure")))
}

func TestRecordChartRender(t *testing.T) {
	before := testutil.ToFloat64(ChartRenders.WithLabelValues("top_bar", "error"))
	RecordChartRender("top_bar", errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(ChartRenders.WithLabelValues("top_bar", "error")))
}
