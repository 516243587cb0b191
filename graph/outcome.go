package graph

// OutcomeStatus is the terminal disposition of a node handler invocation.
type OutcomeStatus string

const (
	StatusSuccess        OutcomeStatus = "SUCCESS"
	StatusFail           OutcomeStatus = "FAIL"
	StatusPartialSuccess OutcomeStatus = "PARTIAL_SUCCESS"
	StatusRetry          OutcomeStatus = "RETRY"
)

// Outcome is the result a NodeHandler returns for a single node execution.
type Outcome struct {
	Status OutcomeStatus

	// PreferredLabel hints which labeled edge a human-interview result
	// prefers; edge selection does not currently consult it.
	PreferredLabel string

	// SuggestedNextIDs is an unused routing hint per spec.md §9 — edge
	// selection and failure routing never read it today.
	// TODO: wire into SelectEdge once a routing mode is defined that uses it.
	SuggestedNextIDs []string

	// ContextUpdates is merged into the run Context after the handler
	// returns, before routing is evaluated.
	ContextUpdates map[string]any

	Notes         string
	FailureReason string
}

// Success builds a bare SUCCESS outcome.
func Success() Outcome {
	return Outcome{Status: StatusSuccess}
}

// Fail builds a FAIL outcome carrying the given reason.
func Fail(reason string) Outcome {
	return Outcome{Status: StatusFail, FailureReason: reason}
}
