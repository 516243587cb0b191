package graph

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/EndlessCommerce/orchestra-sub001/graph/emit"
)

// RunnerOption configures a Runner. Functional options keep the common
// case (graph.NewRunner(registry)) simple while still allowing every
// knob — timeouts, metrics, cost tracking, observers — to be set
// explicitly when needed.
type RunnerOption func(*Runner)

// WithMaxSteps caps the number of node visits a single Run performs before
// returning ErrMaxStepsExceeded. Default: 0 (unlimited) — set this when a
// graph has loops (a retry_target cycle, or a conditional edge back to an
// earlier node) that might not terminate.
func WithMaxSteps(n int) RunnerOption {
	return func(r *Runner) { r.maxSteps = n }
}

// WithDefaultNodeTimeout bounds how long a single node's handler may run
// before RunHandlerWithTimeout cancels it and records a FAIL outcome.
// Per-node overrides are read from the node's own attributes by the
// handler, not here. Default: 0 (no timeout).
func WithDefaultNodeTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.defaultNodeTimeout = d }
}

// WithRunWallClockBudget bounds the total wall-clock time of one Run call.
// Default: 0 (no budget — the run's own context governs cancellation).
func WithRunWallClockBudget(d time.Duration) RunnerOption {
	return func(r *Runner) { r.runWallClockBudget = d }
}

// WithMetrics attaches a PrometheusMetrics collector.
func WithMetrics(metrics *PrometheusMetrics) RunnerOption {
	return func(r *Runner) { r.metrics = metrics }
}

// WithCostTracker attaches a CostTracker that AgentTurn telemetry feeds
// into.
func WithCostTracker(tracker *CostTracker) RunnerOption {
	return func(r *Runner) { r.costTracker = tracker }
}

// WithObserver subscribes an Observer to the Runner's Dispatcher.
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) { r.pendingObservers = append(r.pendingObservers, o) }
}

// WithEmitSink forwards every dispatched event to sink (e.g. emit.NewLogEmitter,
// an OTel-backed emitter) in addition to registered Observers.
func WithEmitSink(sink emit.Emitter) RunnerOption {
	return func(r *Runner) { r.sink = sink }
}

// WithLogger attaches the structured logger the Runner uses for
// node-enter/exit, routing, and retry logging (Info), failures (Warn), and
// invariant violations (Error). Default: a no-op logger.
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRandSource pins the *rand.Rand used for retry-backoff jitter
// (RetryPolicy.Delay), making backoff timing reproducible in tests. Default:
// a time-seeded source created lazily on first use.
func WithRandSource(rng *rand.Rand) RunnerOption {
	return func(r *Runner) { r.rng = rng }
}
