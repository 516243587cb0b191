package emit

// Event is an observability event emitted during a pipeline run: node
// enter/exit, routing decisions, retries, and run-level start/complete/error.
type Event struct {
	// RunID identifies the pipeline run that emitted this event.
	RunID string

	// Step is the sequential step number in the run (1-indexed). The graph
	// Dispatcher numbers every event it forwards, run-level ones included.
	Step int

	// NodeID identifies which node emitted this event. Empty for run-level
	// events.
	NodeID string

	// Msg is a human-readable description of the event.
	Msg string

	// Meta carries event-specific structured data, e.g. "duration_ms",
	// "error", "tokens", "retryable".
	Meta map[string]interface{}
}
