package graph

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics collects Prometheus-compatible metrics for a pipeline
// run: node latency, retry counts, and terminal outcomes. Namespaced
// "orchestra_".
//
// Concurrency-oriented gauges the teacher's engine carried (inflight node
// counts, queue depth, merge conflicts, backpressure events) have no
// meaning for this engine's single-threaded traversal and are not wired
// here — see DESIGN.md.
type PrometheusMetrics struct {
	stepLatency      *prometheus.HistogramVec
	retries          *prometheus.CounterVec
	terminalOutcomes *prometheus.CounterVec

	mu      sync.RWMutex
	enabled bool
}

// NewPrometheusMetrics registers pipeline metrics with registry. A nil
// registry falls back to prometheus.DefaultRegisterer.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		enabled: true,
		stepLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "orchestra",
			Name:      "step_latency_ms",
			Help:      "Node execution duration in milliseconds.",
			Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000, 60000},
		}, []string{"run_id", "node_id", "status"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orchestra",
			Name:      "retries_total",
			Help:      "Cumulative count of failure-routing retries, by node.",
		}, []string{"run_id", "node_id"}),
		terminalOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orchestra",
			Name:      "terminal_outcomes_total",
			Help:      "Pipeline runs ending in each terminal status.",
		}, []string{"run_id", "status"}),
	}
}

// RecordStepLatency records how long one node's handler took to return.
func (pm *PrometheusMetrics) RecordStepLatency(runID, nodeID string, latency time.Duration, status string) {
	if !pm.enabledNow() {
		return
	}
	pm.stepLatency.WithLabelValues(runID, nodeID, status).Observe(float64(latency.Milliseconds()))
}

// IncrementRetries records one retry-routing hop for nodeID.
func (pm *PrometheusMetrics) IncrementRetries(runID, nodeID string) {
	if !pm.enabledNow() {
		return
	}
	pm.retries.WithLabelValues(runID, nodeID).Inc()
}

// RecordTerminalOutcome records the status a run ended in.
func (pm *PrometheusMetrics) RecordTerminalOutcome(runID, status string) {
	if !pm.enabledNow() {
		return
	}
	pm.terminalOutcomes.WithLabelValues(runID, status).Inc()
}

func (pm *PrometheusMetrics) enabledNow() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// Disable stops metric recording (useful in tests).
func (pm *PrometheusMetrics) Disable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = false
}

// Enable resumes metric recording after Disable.
func (pm *PrometheusMetrics) Enable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = true
}
