// Package graph provides the pipeline graph model and execution engine.
package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMaxStepsExceeded indicates that the graph execution reached the
// maximum allowed step count without completing. This prevents infinite
// loops and runaway executions.
var ErrMaxStepsExceeded = errors.New("execution exceeded maximum steps limit")

// ErrInvalidRetryPolicy is returned by RetryPolicy.Validate for malformed
// backoff configuration.
var ErrInvalidRetryPolicy = errors.New("invalid retry policy")

// ErrCostBudgetExceeded is returned by CostTracker.RecordLLMCall once
// cumulative spend crosses the tracker's Budget.
var ErrCostBudgetExceeded = errors.New("cost budget exceeded")

// ValidationFailed is raised by ValidateOrRaise when a graph's diagnostics
// contain at least one ERROR. It carries the full collection so callers can
// inspect every finding, not just the first.
type ValidationFailed struct {
	Diagnostics *DiagnosticCollection
}

func (e *ValidationFailed) Error() string {
	errs := e.Diagnostics.Errors()
	lines := make([]string, 0, len(errs))
	for _, d := range errs {
		lines = append(lines, fmt.Sprintf("  [%s] %s", d.Rule, d.Message))
	}
	return fmt.Sprintf("validation failed with %d error(s):\n%s", len(errs), strings.Join(lines, "\n"))
}

// InvariantViolation signals an internal bug — e.g. an edge referencing a
// node id the graph no longer has at runtime. It is fatal: the runner
// aborts rather than attempting failure routing.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Detail
}

// BackendUnavailable signals a connection or auth failure talking to a
// backend. Handlers translate it into a FAIL outcome (sanitized via
// SanitizeError) so that failure routing, not a panic, decides what happens
// next.
type BackendUnavailable struct {
	Cause error
}

func (e *BackendUnavailable) Error() string {
	return "backend unavailable: " + e.Cause.Error()
}

func (e *BackendUnavailable) Unwrap() error {
	return e.Cause
}

// TimeoutExceeded signals a subprocess or interview timeout.
type TimeoutExceeded struct {
	Detail string
}

func (e *TimeoutExceeded) Error() string {
	return "timeout exceeded: " + e.Detail
}
