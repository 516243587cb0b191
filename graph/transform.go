package graph

import "strings"

// ExpandVariables substitutes "$goal" in every node's prompt with the
// graph's Goal, matching transforms/variable_expansion.py. Pipeline
// transforms run once, before validation, so handlers never see the raw
// "$goal" placeholder.
func ExpandVariables(g *PipelineGraph) *PipelineGraph {
	for id, n := range g.Nodes {
		if strings.Contains(n.Prompt, "$goal") {
			n.Prompt = strings.ReplaceAll(n.Prompt, "$goal", g.Goal)
			g.Nodes[id] = n
		}
	}
	return g
}
