// Package metrics defines the Prometheus collectors shared across the
// application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// UploadsTotal counts accepted document uploads.
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "svgvolume",
		Name:      "uploads_total",
		Help:      "Number of SVG documents accepted for calculation.",
	})

	// CalculationsTotal counts volume calculations by result.
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "svgvolume",
		Name:      "calculations_total",
		Help:      "Number of volume calculations partitioned by result.",
	}, []string{"result"})

	// CalculationDuration observes end-to-end calculation latency, including
	// document parsing, shape extraction and nesting resolution.
	CalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "svgvolume",
		Name:      "calculation_duration_seconds",
		Help:      "Time spent computing the poured volume of a document.",
		Buckets:   DefaultBuckets,
	})

	// ExtractedShapes observes how many closed shapes each processed document
	// yields.
	ExtractedShapes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "svgvolume",
		Name:      "extracted_shapes",
		Help:      "Closed shapes extracted per document.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500},
	})
)

// Result label values for CalculationsTotal.
const (
	ResultOK    = "ok"
	ResultError = "error"
)
