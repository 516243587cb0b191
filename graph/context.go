package graph

// Context is the mutable keyed store threaded through one pipeline run.
// It is owned by the runner; handlers read it via Snapshot and contribute
// changes through Outcome.ContextUpdates rather than mutating it directly.
type Context struct {
	data map[string]any
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{data: map[string]any{}}
}

// Get returns the value stored under key, or nil if unset.
func (c *Context) Get(key string) any {
	if c.data == nil {
		return nil
	}
	return c.data[key]
}

// GetString returns the value stored under key as a string, or "" if the
// key is unset or holds a non-string value.
func (c *Context) GetString(key string) string {
	v, _ := c.Get(key).(string)
	return v
}

// Set stores value under key.
func (c *Context) Set(key string, value any) {
	if c.data == nil {
		c.data = map[string]any{}
	}
	c.data[key] = value
}

// Snapshot returns a shallow copy of the current key/value pairs. Mutating
// the returned map does not affect the Context, but mutating a nested
// collection reached through it does — use Clone for full isolation.
func (c *Context) Snapshot() map[string]any {
	out := make(map[string]any, len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy of the Context. Nested map[string]any, []any
// and []string values are copied, so mutating them through the clone never
// affects the original; values of any other reference type (pointers,
// other map or slice types) are shared between the two.
func (c *Context) Clone() *Context {
	clone := NewContext()
	for k, v := range c.data {
		clone.data[k] = deepCopyValue(v)
	}
	return clone
}

// Apply merges updates into the Context, matching the Outcome.ContextUpdates
// patch-application step of the runner loop.
func (c *Context) Apply(updates map[string]any) {
	for k, v := range updates {
		c.Set(k, v)
	}
}

// deepCopyValue structurally copies JSON-like values (maps, slices, and
// scalars). Values of other concrete types are returned as-is: the Context
// is documented to hold JSON-like data, and copying arbitrary Go types
// structurally isn't meaningful without reflection the spec doesn't ask for.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, nested := range val {
			out[k] = deepCopyValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, nested := range val {
			out[i] = deepCopyValue(nested)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
