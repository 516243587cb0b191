package graph

// Edge represents a directed connection between two nodes in a PipelineGraph.
//
// An edge with an empty Condition is unconditional: it is always eligible,
// subject to the weight/lexical tie-break in SelectEdge. An edge with a
// non-empty Condition is only eligible when EvaluateCondition(Condition, ...)
// returns true.
type Edge struct {
	FromNode  string
	ToNode    string
	Condition string
	Weight    int

	// Label optionally encodes a human-interview accelerator (see
	// interview.ParseAccelerator) for edges reached through an approval step.
	Label string
}

// Unconditional reports whether the edge has no guard expression.
func (e Edge) Unconditional() bool {
	return e.Condition == ""
}
