package graph

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EndlessCommerce/orchestra-sub001/graph/emit"
)

// RunResult is what Run returns once a PipelineGraph traversal reaches a
// terminal node or fails to find a successor.
type RunResult struct {
	RunID         string
	FinalStatus   OutcomeStatus
	Context       *Context
	StepsExecuted int
	VisitedNodes  []string
}

// Runner executes a validated PipelineGraph: dispatch the current node to
// its handler, apply the resulting Outcome's context updates, pick the
// next node via SelectEdge (success path) or ResolveFailureTarget (failure
// path), and repeat until an exit node or a dead end is reached.
type Runner struct {
	registry *Registry

	maxSteps           int
	defaultNodeTimeout time.Duration
	runWallClockBudget time.Duration

	metrics     *PrometheusMetrics
	costTracker *CostTracker

	pendingObservers []Observer
	sink             emit.Emitter

	logger *zap.Logger
	rng    *rand.Rand
}

// NewRunner builds a Runner bound to registry and applies opts. Absent a
// WithLogger option, the Runner logs to a no-op zap.Logger so call sites
// never need a nil check; absent a WithRandSource option, retry backoff
// jitter (see RetryPolicy.Delay) draws from a time-seeded source.
func NewRunner(registry *Registry, opts ...RunnerOption) *Runner {
	r := &Runner{registry: registry, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates g, expands its $goal variables, and traverses it from its
// single start node to a terminal node. It never panics: every failure
// mode (validation, an unresolved invariant, a wall-clock budget, a
// max-steps cap) surfaces as a returned error.
func (r *Runner) Run(ctx context.Context, g *PipelineGraph) (*RunResult, error) {
	runID := uuid.NewString()
	dispatcher := NewDispatcher(runID, r.sink)
	for _, o := range r.pendingObservers {
		dispatcher.Subscribe(o)
	}

	expanded := ExpandVariables(g)

	diags, err := ValidateOrRaise(expanded)
	if err != nil {
		r.logger.Warn("graph validation failed", zap.String("run_id", runID), zap.Error(err))
		dispatcher.Dispatch(PipelineEvent{Type: EventValidationFailed, Diagnostics: diags})
		return nil, err
	}

	start, ok := expanded.GetStartNode()
	if !ok {
		err := &InvariantViolation{Detail: "no unique start node after validation"}
		r.logger.Error("invariant violation", zap.String("run_id", runID), zap.Error(err))
		return nil, err
	}

	if r.runWallClockBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.runWallClockBudget)
		defer cancel()
	}

	pctx := NewContext()
	dispatcher.Dispatch(PipelineEvent{Type: EventPipelineStarted, RunID: runID, NodeID: start.ID})
	r.logger.Info("pipeline started", zap.String("run_id", runID), zap.String("pipeline", g.Name), zap.String("start_node", start.ID))

	result := &RunResult{RunID: runID, Context: pctx}
	retryCounts := map[string]int{}
	currentID := start.ID

	for {
		if r.maxSteps > 0 && result.StepsExecuted >= r.maxSteps {
			r.logger.Error("invariant violation", zap.String("run_id", runID), zap.Error(ErrMaxStepsExceeded))
			return result, ErrMaxStepsExceeded
		}
		if err := ctx.Err(); err != nil {
			r.logger.Warn("run context cancelled", zap.String("run_id", runID), zap.Error(err))
			return result, err
		}

		node, err := expanded.ResolveNode(currentID)
		if err != nil {
			r.logger.Error("invariant violation", zap.String("run_id", runID), zap.String("node_id", currentID), zap.Error(err))
			return result, err
		}

		handler, ok := r.registry.Lookup(node)
		if !ok {
			err := &InvariantViolation{Detail: "no handler registered for shape " + node.Shape}
			r.logger.Error("invariant violation", zap.String("run_id", runID), zap.String("node_id", node.ID), zap.Error(err))
			return result, err
		}

		r.logger.Info("node entered", zap.String("run_id", runID), zap.String("node_id", node.ID), zap.String("shape", node.Shape))
		dispatcher.Dispatch(PipelineEvent{Type: EventNodeEntered, RunID: runID, NodeID: node.ID})
		result.VisitedNodes = append(result.VisitedNodes, node.ID)

		started := time.Now()
		outcome := RunHandlerWithTimeout(ctx, handler, node, pctx, expanded, r.defaultNodeTimeout)
		elapsed := time.Since(started)
		if r.metrics != nil {
			r.metrics.RecordStepLatency(runID, node.ID, elapsed, string(outcome.Status))
		}

		pctx.Apply(outcome.ContextUpdates)
		result.StepsExecuted++

		if outcome.Status == StatusFail {
			r.logger.Warn("node failed", zap.String("run_id", runID), zap.String("node_id", node.ID), zap.String("notes", outcome.Notes), zap.Duration("elapsed", elapsed))
		} else {
			r.logger.Info("node exited", zap.String("run_id", runID), zap.String("node_id", node.ID), zap.String("status", string(outcome.Status)), zap.Duration("elapsed", elapsed))
		}
		dispatcher.Dispatch(PipelineEvent{Type: EventNodeCompleted, RunID: runID, NodeID: node.ID, Outcome: &outcome})

		if CanonicalShape(node.Shape) == ShapeExit {
			result.FinalStatus = outcome.Status
			break
		}

		if outcome.Status == StatusFail || outcome.Status == StatusRetry {
			retryCounts[node.ID]++
			if retryCounts[node.ID] > NodeMaxRetries(node) {
				fallback, ok := ResolveFallbackRetryTarget(node, expanded)
				if !ok {
					r.logger.Warn("retry cap exceeded with no fallback target",
						zap.String("run_id", runID), zap.String("node_id", node.ID), zap.Int("max_retries", NodeMaxRetries(node)))
					result.FinalStatus = StatusFail
					break
				}
				r.logger.Info("retry cap exceeded, routing to fallback_retry_target",
					zap.String("run_id", runID), zap.String("node_id", node.ID), zap.String("fallback", fallback))
				dispatcher.Dispatch(PipelineEvent{Type: EventEdgeTraversed, RunID: runID, FromNode: node.ID, ToNode: fallback, Outcome: &outcome})
				currentID = fallback
				continue
			}

			target, ok := ResolveFailureTarget(node, expanded, outcome, pctx)
			if !ok {
				r.logger.Warn("no failure route available, terminating failed",
					zap.String("run_id", runID), zap.String("node_id", node.ID))
				result.FinalStatus = StatusFail
				break
			}
			if r.metrics != nil {
				r.metrics.IncrementRetries(runID, node.ID)
			}
			r.logger.Info("routing after failure/retry outcome",
				zap.String("run_id", runID), zap.String("node_id", node.ID), zap.String("target", target), zap.String("status", string(outcome.Status)),
				zap.Int("attempt", retryCounts[node.ID]))
			dispatcher.Dispatch(PipelineEvent{Type: EventEdgeTraversed, RunID: runID, FromNode: node.ID, ToNode: target, Outcome: &outcome})

			if delay := NodeRetryPolicy(node).Delay(retryCounts[node.ID], r.rng); delay > 0 {
				r.logger.Info("backing off before retry",
					zap.String("run_id", runID), zap.String("node_id", node.ID), zap.Duration("delay", delay))
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					r.logger.Warn("run context cancelled during retry backoff", zap.String("run_id", runID), zap.Error(ctx.Err()))
					return result, ctx.Err()
				}
			}
			currentID = target
			continue
		}

		edge, ok := SelectEdge(node.ID, outcome, pctx, expanded)
		if !ok {
			result.FinalStatus = outcome.Status
			break
		}
		r.logger.Info("routing after success outcome",
			zap.String("run_id", runID), zap.String("from_node", edge.FromNode), zap.String("to_node", edge.ToNode))
		dispatcher.Dispatch(PipelineEvent{Type: EventEdgeTraversed, RunID: runID, FromNode: edge.FromNode, ToNode: edge.ToNode, Outcome: &outcome})
		currentID = edge.ToNode
	}

	if r.metrics != nil {
		r.metrics.RecordTerminalOutcome(runID, string(result.FinalStatus))
	}
	r.logger.Info("pipeline completed", zap.String("run_id", runID), zap.String("status", string(result.FinalStatus)), zap.Int("steps", result.StepsExecuted))
	dispatcher.Dispatch(PipelineEvent{Type: EventPipelineCompleted, RunID: runID, Fields: map[string]any{"status": string(result.FinalStatus), "steps": result.StepsExecuted}})

	return result, nil
}

// MakeOnTurn returns an OnTurnFunc that dispatches EventAgentTurnComplete
// to dispatcher and, if tracker is non-nil, records the turn's cost. A
// tracker with a Budget set logs a Warn through logger (nil-safe: pass
// zap.NewNop() if none is available) when the turn pushes spend past it —
// the turn itself already happened, so this is a signal for the next
// routing decision, not a way to cancel the one in flight.
func MakeOnTurn(dispatcher *Dispatcher, runID, nodeID string, tracker *CostTracker, logger *zap.Logger) OnTurnFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(turn AgentTurn) {
		if tracker != nil {
			input, output := turn.TokenUsage["input"], turn.TokenUsage["output"]
			if err := tracker.RecordLLMCall(turn.Model, input, output, nodeID); err != nil {
				logger.Warn("cost budget exceeded",
					zap.String("run_id", runID), zap.String("node_id", nodeID), zap.String("model", turn.Model),
					zap.Float64("total_cost", tracker.GetTotalCost()), zap.Float64("budget", tracker.Budget))
			}
		}
		if dispatcher != nil {
			t := turn
			dispatcher.Dispatch(PipelineEvent{Type: EventAgentTurnComplete, RunID: runID, NodeID: nodeID, Turn: &t})
		}
	}
}

// OnTurn builds the Runner's own OnTurnFunc for nodeID during run runID,
// wired to the Runner's configured cost tracker and logger (see
// WithCostTracker, WithLogger). Handler constructors such as
// NewCodergenHandler take an OnTurnFunc at registration time, before a
// run's runID exists — callers that need per-run cost attribution build
// their registry fresh per run and call this from within that setup.
func (r *Runner) OnTurn(dispatcher *Dispatcher, runID, nodeID string) OnTurnFunc {
	return MakeOnTurn(dispatcher, runID, nodeID, r.costTracker, r.logger)
}
