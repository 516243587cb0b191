package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph(edges []Edge) *PipelineGraph {
	nodes := map[string]Node{
		"A": {ID: "A", Shape: ShapeAction},
		"B": {ID: "B", Shape: ShapeAction},
		"C": {ID: "C", Shape: ShapeAction},
		"exit": {ID: "exit", Shape: ShapeExit},
	}
	return New("t", nodes, edges, nil, "")
}

func TestSelectEdge_NoOutgoing(t *testing.T) {
	g := newTestGraph(nil)
	_, ok := SelectEdge("A", Success(), NewContext(), g)
	assert.False(t, ok)
}

func TestSelectEdge_ConditionalWinsOverWeight(t *testing.T) {
	g := newTestGraph([]Edge{
		{FromNode: "A", ToNode: "B", Weight: 10},
		{FromNode: "A", ToNode: "C", Condition: "outcome=success", Weight: 1},
	})
	edge, ok := SelectEdge("A", Success(), NewContext(), g)
	require.True(t, ok)
	assert.Equal(t, "C", edge.ToNode)
}

func TestSelectEdge_TieBreakByWeightThenLexical(t *testing.T) {
	g := newTestGraph([]Edge{
		{FromNode: "A", ToNode: "C", Weight: 5},
		{FromNode: "A", ToNode: "B", Weight: 5},
	})
	edge, ok := SelectEdge("A", Success(), NewContext(), g)
	require.True(t, ok)
	assert.Equal(t, "B", edge.ToNode)
}

func TestSelectEdge_FallsBackToFullSetWhenNoUnconditional(t *testing.T) {
	g := newTestGraph([]Edge{
		{FromNode: "A", ToNode: "B", Condition: "outcome=fail"},
	})
	edge, ok := SelectEdge("A", Success(), NewContext(), g)
	require.True(t, ok)
	assert.Equal(t, "B", edge.ToNode)
}

func TestResolveFailureTarget_ConditionalThenAttrs(t *testing.T) {
	node := Node{ID: "A", Attributes: map[string]string{"retry_target": "B", "fallback_retry_target": "C"}}
	g := newTestGraph([]Edge{{FromNode: "A", ToNode: "C", Condition: "outcome=fail"}})

	target, ok := ResolveFailureTarget(node, g, Fail("boom"), NewContext())
	require.True(t, ok)
	assert.Equal(t, "C", target)

	g2 := newTestGraph(nil)
	target, ok = ResolveFailureTarget(node, g2, Fail("boom"), NewContext())
	require.True(t, ok)
	assert.Equal(t, "B", target)

	node.Attributes = map[string]string{"fallback_retry_target": "C"}
	target, ok = ResolveFailureTarget(node, g2, Fail("boom"), NewContext())
	require.True(t, ok)
	assert.Equal(t, "C", target)

	node.Attributes = nil
	_, ok = ResolveFailureTarget(node, g2, Fail("boom"), NewContext())
	assert.False(t, ok)
}

func TestNodeMaxRetries_DefaultsWhenUnset(t *testing.T) {
	assert.Equal(t, DefaultMaxRetries, NodeMaxRetries(Node{}))
	assert.Equal(t, 3, NodeMaxRetries(Node{Attributes: map[string]string{"max_retries": "3"}}))
	assert.Equal(t, DefaultMaxRetries, NodeMaxRetries(Node{Attributes: map[string]string{"max_retries": "nope"}}))
}
