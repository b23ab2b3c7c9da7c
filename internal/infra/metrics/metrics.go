// Package metrics holds the Prometheus collectors for inference calls and
// normalization outcomes.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// InferenceRequestsTotal counts generate calls by outcome.
	InferenceRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inferlab",
		Subsystem: "inference",
		Name:      "requests_total",
		Help:      "Total number of generate calls, labeled by outcome.",
	}, []string{"outcome"})

	// InferenceDurationSeconds is the round-trip time of a generate call.
	InferenceDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inferlab",
		Subsystem: "inference",
		Name:      "duration_seconds",
		Help:      "Round-trip time of a generate call, labeled by outcome.",
		// Vision prompts on local hardware can take minutes.
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60, 120, 300},
	}, []string{"outcome"})

	// NormalizedTotal counts normalized records by mode and resulting label
	// ("positive"... for sentiment, "ok" or the error reason for animals).
	NormalizedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inferlab",
		Subsystem: "normalizer",
		Name:      "records_total",
		Help:      "Total number of normalized records, labeled by mode and label.",
	}, []string{"mode", "label"})
)

// Register registers the collectors with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			InferenceRequestsTotal,
			InferenceDurationSeconds,
			NormalizedTotal,
		)
	})
}
