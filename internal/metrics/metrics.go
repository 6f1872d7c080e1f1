// Package metrics registers the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieboard_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieboard_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieboard_api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	// Query pipeline
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieboard_query_duration_seconds",
			Help:    "Duration of dashboard queries in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"query"},
	)

	QueryEmptyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieboard_query_empty_results_total",
			Help: "Queries that matched no movies",
		},
		[]string{"query"},
	)

	ChartRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieboard_chart_renders_total",
			Help: "Rendered chart images",
		},
		[]string{"chart", "result"},
	)

	// Dataset
	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieboard_dataset_records",
			Help: "Rows in the active dataset snapshot",
		},
	)

	DatasetSkippedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movieboard_dataset_skipped_rows",
			Help: "Rows skipped while loading the active snapshot",
		},
	)

	DatasetReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieboard_dataset_reloads_total",
			Help: "Dataset reload attempts",
		},
		[]string{"trigger", "result"},
	)

	DatasetReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movieboard_dataset_reload_duration_seconds",
			Help:    "Duration of dataset reloads including mirroring and indexing",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Rate limiting
	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movieboard_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// RecordAPIRequest records one served request
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// ObserveQuery times a dashboard query and counts empty results
func ObserveQuery(query string, start time.Time, empty bool) {
	QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	if empty {
		QueryEmptyResults.WithLabelValues(query).Inc()
	}
}

// RecordChartRender counts a chart render by outcome
func RecordChartRender(chart string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ChartRenders.WithLabelValues(chart, result).Inc()
}

// RecordDatasetLoaded updates the snapshot gauges
func RecordDatasetLoaded(records, skipped int) {
	DatasetRecords.Set(float64(records))
	DatasetSkippedRows.Set(float64(skipped))
}

// RecordDatasetReload counts a reload attempt
func RecordDatasetReload(trigger string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	DatasetReloads.WithLabelValues(trigger, result).Inc()
	DatasetReloadDuration.Observe(duration.Seconds())
}
