// Package graph provides the pipeline graph model and execution engine.
package graph

// Shape discriminates a Node's handler. The canonical wire values are the
// Graphviz-style strings used by the original pipeline format; the
// friendlier names from the spec are provided as aliases for callers that
// prefer them — see CanonicalShape.
const (
	ShapeStart       = "Mdiamond"
	ShapeExit        = "Msquare"
	ShapeAction      = "box"
	ShapeConditional = "diamond"

	ShapeStartAlias       = "start"
	ShapeExitAlias        = "exit"
	ShapeActionAlias      = "action"
	ShapeConditionalAlias = "conditional"
)

// CanonicalShape maps either spelling of a node shape to its canonical
// Graphviz-style wire value. Unknown shapes are returned unchanged.
func CanonicalShape(shape string) string {
	switch shape {
	case ShapeStartAlias:
		return ShapeStart
	case ShapeExitAlias:
		return ShapeExit
	case ShapeActionAlias:
		return ShapeAction
	case ShapeConditionalAlias:
		return ShapeConditional
	default:
		return shape
	}
}

// Node is a single stage in a PipelineGraph.
//
// Attributes carries free-form node configuration. Recognized keys include
// "agent", "agent.mode", "llm_model", "llm_provider", "retry_target",
// "fallback_retry_target", and "max_retries" — see the Node Handler
// Registry and failure routing for how each is consumed.
type Node struct {
	ID         string
	Shape      string
	Prompt     string
	Attributes map[string]string
}

// Attr returns the named attribute, or the empty string if unset.
func (n Node) Attr(key string) string {
	if n.Attributes == nil {
		return ""
	}
	return n.Attributes[key]
}

// NodeError is a structured error produced by a failing node handler.
// It carries enough context for observability without needing to parse
// error strings.
type NodeError struct {
	Message string
	Code    string
	NodeID  string
	Cause   error
}

func (e *NodeError) Error() string {
	if e.NodeID != "" {
		return "node " + e.NodeID + ": " + e.Message
	}
	return e.Message
}

func (e *NodeError) Unwrap() error {
	return e.Cause
}
