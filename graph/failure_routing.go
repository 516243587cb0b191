package graph

import "strconv"

// DefaultMaxRetries is used when a node's "max_retries" attribute is unset
// or unparseable.
const DefaultMaxRetries = 1

// ResolveFailureTarget decides where to route after a FAIL/RETRY outcome,
// per spec.md §4.4:
//
//  1. The first outgoing edge (declaration order) whose condition
//     evaluates true under the failure outcome wins.
//  2. Else the node's "retry_target" attribute, if it names an existing node.
//  3. Else the node's "fallback_retry_target" attribute, if it names an
//     existing node.
//  4. Else no target — the pipeline terminates in a failed terminal state.
func ResolveFailureTarget(node Node, g *PipelineGraph, outcome Outcome, ctx *Context) (string, bool) {
	for _, e := range g.GetOutgoingEdges(node.ID) {
		if e.Condition != "" && EvaluateCondition(e.Condition, outcome, ctx) {
			return e.ToNode, true
		}
	}

	if target := node.Attr("retry_target"); target != "" {
		if _, ok := g.Nodes[target]; ok {
			return target, true
		}
	}

	if fallback := node.Attr("fallback_retry_target"); fallback != "" {
		if _, ok := g.Nodes[fallback]; ok {
			return fallback, true
		}
	}

	return "", false
}

// ResolveFallbackRetryTarget looks up node's "fallback_retry_target"
// attribute directly, bypassing the conditional-edge and "retry_target"
// steps ResolveFailureTarget otherwise tries first. The Runner calls this
// once a node's retry cap is exceeded: spec.md §4.4 requires falling
// through specifically to the fallback branch at that point, not
// re-matching whatever edge or retry_target kept the node looping.
func ResolveFallbackRetryTarget(node Node, g *PipelineGraph) (string, bool) {
	fallback := node.Attr("fallback_retry_target")
	if fallback == "" {
		return "", false
	}
	if _, ok := g.Nodes[fallback]; !ok {
		return "", false
	}
	return fallback, true
}

// NodeMaxRetries reads a node's "max_retries" attribute, defaulting to
// DefaultMaxRetries when unset or unparseable.
func NodeMaxRetries(node Node) int {
	raw := node.Attr("max_retries")
	if raw == "" {
		return DefaultMaxRetries
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return DefaultMaxRetries
	}
	return n
}
