package graph

import (
	"fmt"
	"sort"
)

// PipelineGraph is an immutable-by-convention directed graph of Nodes
// connected by Edges, plus graph-level defaults consulted by model
// resolution and variable expansion.
type PipelineGraph struct {
	Name            string
	Nodes           map[string]Node
	Edges           []Edge
	GraphAttributes map[string]string
	Goal            string
}

// New constructs a PipelineGraph, defensively copying the node map so later
// mutation of the caller's map does not alias the graph.
func New(name string, nodes map[string]Node, edges []Edge, attrs map[string]string, goal string) *PipelineGraph {
	nodeCopy := make(map[string]Node, len(nodes))
	for id, n := range nodes {
		nodeCopy[id] = n
	}
	edgeCopy := make([]Edge, len(edges))
	copy(edgeCopy, edges)
	return &PipelineGraph{
		Name:            name,
		Nodes:           nodeCopy,
		Edges:           edgeCopy,
		GraphAttributes: attrs,
		Goal:            goal,
	}
}

// GetOutgoingEdges returns the edges leaving nodeID in declaration order.
// Order matters: failure routing and edge selection both scan in this order.
func (g *PipelineGraph) GetOutgoingEdges(nodeID string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.FromNode == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// GetIncomingEdges returns the edges arriving at nodeID.
func (g *PipelineGraph) GetIncomingEdges(nodeID string) []Edge {
	var in []Edge
	for _, e := range g.Edges {
		if e.ToNode == nodeID {
			in = append(in, e)
		}
	}
	return in
}

// GetExitNodes returns every node with no outgoing edges, sorted by ID for
// deterministic iteration.
func (g *PipelineGraph) GetExitNodes() []Node {
	var exits []Node
	for id, n := range g.Nodes {
		if len(g.GetOutgoingEdges(id)) == 0 {
			exits = append(exits, n)
		}
	}
	sort.Slice(exits, func(i, j int) bool { return exits[i].ID < exits[j].ID })
	return exits
}

// GetStartNode returns the graph's unique start node (Shape Mdiamond/start).
// ok is false when zero or more than one start node exists.
func (g *PipelineGraph) GetStartNode() (node Node, ok bool) {
	var found []Node
	for _, n := range g.Nodes {
		if CanonicalShape(n.Shape) == ShapeStart {
			found = append(found, n)
		}
	}
	if len(found) != 1 {
		return Node{}, false
	}
	return found[0], true
}

// ReachableFromStart returns the set of node IDs reachable from the start
// node, including the start node itself. In addition to declared Edges, a
// node's "retry_target" and "fallback_retry_target" attributes count as
// outgoing routes — ResolveFailureTarget can send execution to either one
// without a declared edge, so a node only reached that way is not
// unreachable dead code.
func (g *PipelineGraph) ReachableFromStart() map[string]bool {
	start, ok := g.GetStartNode()
	visited := map[string]bool{}
	if !ok {
		return visited
	}
	queue := []string{start.ID}
	visited[start.ID] = true
	visit := func(to string) {
		if to == "" {
			return
		}
		if _, ok := g.Nodes[to]; !ok {
			return
		}
		if !visited[to] {
			visited[to] = true
			queue = append(queue, to)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, e := range g.GetOutgoingEdges(id) {
			visit(e.ToNode)
		}
		if n, ok := g.Nodes[id]; ok {
			visit(n.Attr("retry_target"))
			visit(n.Attr("fallback_retry_target"))
		}
	}
	return visited
}

// ResolveNode looks up a node by ID, returning an InvariantViolation error
// if the graph was mutated at runtime to reference a missing node.
func (g *PipelineGraph) ResolveNode(id string) (Node, error) {
	n, ok := g.Nodes[id]
	if !ok {
		return Node{}, &InvariantViolation{Detail: fmt.Sprintf("edge references missing node %q", id)}
	}
	return n, nil
}
