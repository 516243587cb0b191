package graph

// AgentTurn is the telemetry record created per conversational iteration
// with a backend. One is produced per completed turn and handed to the
// node's on_turn callback.
type AgentTurn struct {
	TurnNumber    int
	Model         string
	Provider      string
	Messages      []map[string]any
	ToolCalls     []map[string]any
	FilesWritten  []string
	TokenUsage    map[string]int
	AgentState    map[string]any
	GitSHA        string
	CommitMessage string
}

// OnTurnFunc is invoked once per completed agent turn. Implementations must
// be non-blocking from the backend's perspective — observers that need to
// do real work should queue internally (spec.md §4.5).
type OnTurnFunc func(turn AgentTurn)

// WriteTracker records an ordered, deduplicated set of file paths written
// by tool calls during one agent turn. It is per-turn and per-handler: it
// is never shared across handlers (spec.md §4.9, §5).
type WriteTracker struct {
	order []string
	seen  map[string]bool
}

// NewWriteTracker returns an empty WriteTracker.
func NewWriteTracker() *WriteTracker {
	return &WriteTracker{seen: map[string]bool{}}
}

// Record appends path to the tracker if it hasn't already been recorded
// since the last Flush.
func (t *WriteTracker) Record(path string) {
	if path == "" || t.seen[path] {
		return
	}
	t.seen[path] = true
	t.order = append(t.order, path)
}

// RecordResult inspects a tool call's return value and records it if it is
// a path string or a slice of path strings — the convention shell-tool
// adapters use to report files they modified.
func (t *WriteTracker) RecordResult(result any) {
	switch v := result.(type) {
	case string:
		t.Record(v)
	case []string:
		for _, p := range v {
			t.Record(p)
		}
	}
}

// Flush returns every recorded path, each exactly once, in first-insertion
// order, and clears the tracker for the next turn.
func (t *WriteTracker) Flush() []string {
	out := t.order
	t.order = nil
	t.seen = map[string]bool{}
	return out
}
