// Package emit provides event emission and observability for pipeline runs.
package emit

import "context"

// Emitter receives observability events from a pipeline run. Implementations
// (LogEmitter, BufferedEmitter, OTelEmitter, NullEmitter) back logging,
// in-memory history, and tracing respectively. Emit must not block the run
// and must not panic; a backend that can't keep up should buffer, sample, or
// drop rather than stall the runner.
type Emitter interface {
	// Emit sends a single event to the configured backend.
	Emit(event Event)

	// EmitBatch sends multiple events in one operation, preserving order.
	// Returns an error only on catastrophic failure; individual event
	// failures should be logged internally, not surfaced here.
	EmitBatch(ctx context.Context, events []Event) error

	// Flush blocks until all buffered events are delivered or ctx expires.
	// Safe to call more than once. Call before shutdown and at run
	// completion so nothing in flight is lost.
	Flush(ctx context.Context) error
}
