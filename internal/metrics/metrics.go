// Package metrics instruments the pipeline stages and the report API with
// Prometheus collectors. All collectors are registered on the default
// registry; the web binary exposes them via Handler.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// StageDuration measures how long each pipeline stage took.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "emistat_pipeline_stage_duration_seconds",
		Help:    "Duration of pipeline stages.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	// RowsProcessed counts rows flowing out of each pipeline stage.
	RowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emistat_pipeline_rows_total",
		Help: "Rows produced per pipeline stage and source.",
	}, []string{"stage", "source"})

	// ReportsServed counts report computations by report kind and outcome.
	ReportsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emistat_reports_served_total",
		Help: "Ranked report computations by kind and outcome.",
	}, []string{"report", "outcome"})

	// HTTPRequests counts API requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emistat_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"route", "status"})
)

// ObserveStage records the elapsed time of a pipeline stage. Use with defer:
//
//	defer metrics.ObserveStage("reconcile", time.Now())
func ObserveStage(stage string, start time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// Handler returns the Prometheus scrape handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
