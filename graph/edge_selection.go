package graph

import "sort"

// SelectEdge chooses the next edge to traverse after a successful node
// execution, per spec.md §4.3:
//
//  1. Fetch outgoing edges; none means the pipeline terminates here.
//  2. The first conditional edge (declaration order) whose condition
//     evaluates true under (outcome, context) wins.
//  3. Otherwise, fall back to unconditional edges (or the full edge set if
//     there are none).
//  4. Sort by (-weight, to_node) and return the first — descending weight,
//     ascending lexical target id as the deterministic tie-break.
//
// SelectEdge never returns an edge belonging to a different node: every
// edge in graph.GetOutgoingEdges(nodeID) already has FromNode == nodeID.
func SelectEdge(nodeID string, outcome Outcome, ctx *Context, g *PipelineGraph) (*Edge, bool) {
	edges := g.GetOutgoingEdges(nodeID)
	if len(edges) == 0 {
		return nil, false
	}

	for _, e := range edges {
		if !e.Unconditional() && EvaluateCondition(e.Condition, outcome, ctx) {
			edge := e
			return &edge, true
		}
	}

	candidates := unconditionalEdges(edges)
	if len(candidates) == 0 {
		candidates = append([]Edge(nil), edges...)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Weight != candidates[j].Weight {
			return candidates[i].Weight > candidates[j].Weight
		}
		return candidates[i].ToNode < candidates[j].ToNode
	})

	best := candidates[0]
	return &best, true
}

func unconditionalEdges(edges []Edge) []Edge {
	var out []Edge
	for _, e := range edges {
		if e.Unconditional() {
			out = append(out, e)
		}
	}
	return out
}
