package graph

import "github.com/EndlessCommerce/orchestra-sub001/graph/emit"

// EventType names the typed lifecycle events a PipelineGraph run produces
// (spec.md §4.6).
type EventType string

const (
	EventPipelineStarted   EventType = "pipeline_started"
	EventPipelineCompleted EventType = "pipeline_completed"
	EventNodeEntered       EventType = "node_entered"
	EventNodeCompleted     EventType = "node_completed"
	EventEdgeTraversed     EventType = "edge_traversed"
	EventAgentTurnComplete EventType = "agent_turn_completed"
	EventValidationFailed  EventType = "validation_failed"
)

// PipelineEvent is the typed event delivered to Observers. Fields not
// relevant to a given EventType are left at their zero value.
type PipelineEvent struct {
	Type      EventType
	RunID     string
	NodeID    string
	FromNode  string
	ToNode    string
	Outcome   *Outcome
	Turn      *AgentTurn
	Diagnostics *DiagnosticCollection
	Fields    map[string]any
}

// Observer receives PipelineEvents as a run progresses. Notify must not
// block the run — slow observers should queue internally.
type Observer interface {
	Notify(event PipelineEvent)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(event PipelineEvent)

// Notify calls f(event).
func (f ObserverFunc) Notify(event PipelineEvent) { f(event) }

// Dispatcher fans typed pipeline events out to registered Observers, in
// registration order, synchronously. It also forwards every event to an
// underlying emit.Emitter so the same run can be logged, buffered, or traced
// to OTel through the emit package's sinks.
type Dispatcher struct {
	observers []Observer
	sink      emit.Emitter
	runID     string
	step      int
}

// NewDispatcher returns a Dispatcher that forwards to sink. A nil sink is
// replaced with emit.NewNullEmitter().
func NewDispatcher(runID string, sink emit.Emitter) *Dispatcher {
	if sink == nil {
		sink = emit.NewNullEmitter()
	}
	return &Dispatcher{sink: sink, runID: runID}
}

// Subscribe registers an observer. Observers are notified in the order
// they were subscribed.
func (d *Dispatcher) Subscribe(o Observer) {
	d.observers = append(d.observers, o)
}

// Dispatch delivers event to every subscribed observer, then to the
// underlying emit sink. Unknown EventTypes are still delivered to
// observers (an Observer that does not recognize a type silently ignores
// it) but this method itself never rejects an event — there is no notion
// of an "unrecognized" PipelineEvent at this layer, only at the Observer.
func (d *Dispatcher) Dispatch(event PipelineEvent) {
	if event.RunID == "" {
		event.RunID = d.runID
	}
	d.step++
	for _, o := range d.observers {
		o.Notify(event)
	}
	d.sink.Emit(toEmitEvent(event, d.step))
}

func toEmitEvent(event PipelineEvent, step int) emit.Event {
	meta := map[string]any{}
	for k, v := range event.Fields {
		meta[k] = v
	}
	if event.Outcome != nil {
		meta["outcome_status"] = string(event.Outcome.Status)
	}
	if event.FromNode != "" {
		meta["from_node"] = event.FromNode
	}
	if event.ToNode != "" {
		meta["to_node"] = event.ToNode
	}
	if event.Turn != nil {
		meta["turn_number"] = event.Turn.TurnNumber
	}
	if event.Diagnostics != nil {
		meta["error_count"] = len(event.Diagnostics.Errors())
	}
	return emit.Event{
		RunID:  event.RunID,
		Step:   step,
		NodeID: event.NodeID,
		Msg:    string(event.Type),
		Meta:   meta,
	}
}
