// Package metrics holds the Prometheus collectors of the dashboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// ChartRendersTotal counts chart renders by chart kind, output format and status
	ChartRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ikdashboard_chart_renders_total",
			Help: "Total number of chart renders",
		},
		[]string{"chart", "format", "status"}, // status: success, placeholder, failed
	)

	// ChartRenderDuration measures chart assembly and encoding time
	ChartRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ikdashboard_chart_render_duration_seconds",
			Help:    "Chart render duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"chart", "format"},
	)

	// HTTPRequestsTotal counts HTTP requests by route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ikdashboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code"},
	)

	// DatasetLoadsTotal counts dataset loads by result
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ikdashboard_dataset_loads_total",
			Help: "Total number of dataset load attempts",
		},
		[]string{"result"}, // result: success, failed
	)

	// DatasetRows tracks the row count of the currently served dataset
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ikdashboard_dataset_rows",
			Help: "Number of rows in the served dataset",
		},
		[]string{"table"}, // table: indicators, trade
	)

	// DatasetLoadedTimestamp is the unix time of the last successful load
	DatasetLoadedTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ikdashboard_dataset_loaded_timestamp_seconds",
			Help: "Unix timestamp of the last successful dataset load",
		},
	)
)

// RecordRender records one chart render
func RecordRender(chart, format, status string, duration time.Duration) {
	ChartRendersTotal.WithLabelValues(chart, format, status).Inc()
	ChartRenderDuration.WithLabelValues(chart, format).Observe(duration.Seconds())
}

// RecordLoad records a dataset load attempt
func RecordLoad(err error, indicatorRows, tradeRows int, at time.Time) {
	if err != nil {
		DatasetLoadsTotal.WithLabelValues("failed").Inc()
		return
	}
	DatasetLoadsTotal.WithLabelValues("success").Inc()
	DatasetRows.WithLabelValues("indicators").Set(float64(indicatorRows))
	DatasetRows.WithLabelValues("trade").Set(float64(tradeRows))
	DatasetLoadedTimestamp.Set(float64(at.Unix()))
}
