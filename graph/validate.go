package graph

import "sort"

// Rule inspects a graph and yields zero or more Diagnostics.
type Rule func(g *PipelineGraph) []Diagnostic

// DefaultRules is the set of validation rules applied by Validate,
// enforcing the invariants from spec.md §3.
var DefaultRules = []Rule{
	ruleSingleStart,
	ruleAtLeastOneExit,
	ruleEdgeEndpointsResolve,
	ruleNonExitHasOutgoing,
	ruleNoUnreachableNodes,
	ruleConditionParses,
}

// Validate runs every rule in DefaultRules against g and returns the
// concatenated diagnostics. It never raises.
func Validate(g *PipelineGraph) *DiagnosticCollection {
	collection := &DiagnosticCollection{}
	for _, rule := range DefaultRules {
		for _, d := range rule(g) {
			collection.Add(d)
		}
	}
	return collection
}

// ValidateOrRaise runs Validate and returns a *ValidationFailed error when
// the resulting collection has_errors, mirroring the Python original's
// validate_or_raise split between a pure check and a single failure signal.
func ValidateOrRaise(g *PipelineGraph) (*DiagnosticCollection, error) {
	collection := Validate(g)
	if collection.HasErrors() {
		return collection, &ValidationFailed{Diagnostics: collection}
	}
	return collection, nil
}

func ruleSingleStart(g *PipelineGraph) []Diagnostic {
	var starts []string
	for id, n := range g.Nodes {
		if CanonicalShape(n.Shape) == ShapeStart {
			starts = append(starts, id)
		}
	}
	sort.Strings(starts)
	switch len(starts) {
	case 1:
		return nil
	case 0:
		return []Diagnostic{{
			Rule: "single-start", Severity: SeverityError,
			Message: "graph has no start node",
		}}
	default:
		return []Diagnostic{{
			Rule: "single-start", Severity: SeverityError,
			Message:    "graph has more than one start node: " + joinIDs(starts),
			Suggestion: "keep exactly one node of shape Mdiamond",
		}}
	}
}

func ruleAtLeastOneExit(g *PipelineGraph) []Diagnostic {
	if len(g.GetExitNodes()) > 0 {
		return nil
	}
	return []Diagnostic{{
		Rule: "at-least-one-exit", Severity: SeverityError,
		Message: "graph has no exit node (no node lacks outgoing edges)",
	}}
}

func ruleEdgeEndpointsResolve(g *PipelineGraph) []Diagnostic {
	var out []Diagnostic
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.FromNode]; !ok {
			out = append(out, Diagnostic{
				Rule: "edge-endpoints-resolve", Severity: SeverityError,
				Message: "edge references unknown source node " + e.FromNode,
				Edge:    &EdgeRef{From: e.FromNode, To: e.ToNode},
			})
		}
		if _, ok := g.Nodes[e.ToNode]; !ok {
			out = append(out, Diagnostic{
				Rule: "edge-endpoints-resolve", Severity: SeverityError,
				Message: "edge references unknown target node " + e.ToNode,
				Edge:    &EdgeRef{From: e.FromNode, To: e.ToNode},
			})
		}
	}
	return out
}

func ruleNonExitHasOutgoing(g *PipelineGraph) []Diagnostic {
	var out []Diagnostic
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := g.Nodes[id]
		if CanonicalShape(n.Shape) == ShapeExit {
			continue
		}
		if len(g.GetOutgoingEdges(id)) == 0 {
			out = append(out, Diagnostic{
				Rule: "non-exit-has-outgoing", Severity: SeverityError,
				Message: "non-exit node " + id + " has no outgoing edges",
				NodeID:  id,
			})
		}
	}
	return out
}

func ruleNoUnreachableNodes(g *PipelineGraph) []Diagnostic {
	if _, ok := g.GetStartNode(); !ok {
		// Already flagged by ruleSingleStart; reachability is undefined without a start.
		return nil
	}
	reachable := g.ReachableFromStart()
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []Diagnostic
	for _, id := range ids {
		if !reachable[id] {
			out = append(out, Diagnostic{
				Rule: "no-unreachable-nodes", Severity: SeverityError,
				Message: "node " + id + " is unreachable from the start node",
				NodeID:  id,
			})
		}
	}
	return out
}

func ruleConditionParses(g *PipelineGraph) []Diagnostic {
	var out []Diagnostic
	for _, e := range g.Edges {
		if e.Condition == "" {
			continue
		}
		if !ConditionParses(e.Condition) {
			out = append(out, Diagnostic{
				Rule: "condition-parses", Severity: SeverityWarning,
				Message:    "condition " + e.Condition + " on edge " + e.FromNode + "->" + e.ToNode + " will always evaluate false",
				Edge:       &EdgeRef{From: e.FromNode, To: e.ToNode},
				Suggestion: "use outcome=<status> and key=value clauses joined with &&",
			})
		}
	}
	return out
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ", "
		}
		out += id
	}
	return out
}
