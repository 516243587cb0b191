package graph

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleLinearGraph() *PipelineGraph {
	nodes := map[string]Node{
		"start":  {ID: "start", Shape: ShapeStart},
		"build":  {ID: "build", Shape: ShapeAction},
		"finish": {ID: "finish", Shape: ShapeExit},
	}
	edges := []Edge{
		{FromNode: "start", ToNode: "build"},
		{FromNode: "build", ToNode: "finish"},
	}
	return New("linear", nodes, edges, nil, "")
}

func TestRunner_LinearGraphSucceeds(t *testing.T) {
	registry := NewDefaultRegistry(SimulationCodergenHandler{}, SimulationCodergenHandler{})
	runner := NewRunner(registry)

	result, err := runner.Run(context.Background(), simpleLinearGraph())
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.FinalStatus)
	assert.Equal(t, []string{"start", "build", "finish"}, result.VisitedNodes)
}

func TestRunner_FailureRoutesToRetryTarget(t *testing.T) {
	nodes := map[string]Node{
		"start": {ID: "start", Shape: ShapeStart},
		"risky": {ID: "risky", Shape: ShapeAction, Attributes: map[string]string{"retry_target": "recover", "max_retries": "1"}},
		"recover": {ID: "recover", Shape: ShapeAction},
		"finish": {ID: "finish", Shape: ShapeExit},
	}
	edges := []Edge{
		{FromNode: "start", ToNode: "risky"},
		{FromNode: "risky", ToNode: "finish", Condition: "outcome=success"},
		{FromNode: "recover", ToNode: "finish"},
	}
	g := New("retry", nodes, edges, nil, "")

	calls := 0
	registry := NewRegistry()
	registry.Register(ShapeStart, NodeHandlerFunc(handleStart))
	registry.Register(ShapeExit, NodeHandlerFunc(handleExit))
	registry.Register(ShapeAction, NodeHandlerFunc(func(_ context.Context, node Node, _ *Context, _ *PipelineGraph) Outcome {
		if node.ID == "risky" {
			calls++
			return Fail("simulated failure")
		}
		return Success()
	}))
	runner := NewRunner(registry)

	result, err := runner.Run(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.FinalStatus)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"start", "risky", "recover", "finish"}, result.VisitedNodes)
}

func TestRunner_ExceedingRetryCapTerminatesFailed(t *testing.T) {
	nodes := map[string]Node{
		"start": {ID: "start", Shape: ShapeStart},
		"risky":  {ID: "risky", Shape: ShapeAction, Attributes: map[string]string{"retry_target": "risky", "max_retries": "1"}},
		"finish": {ID: "finish", Shape: ShapeExit},
	}
	edges := []Edge{
		{FromNode: "start", ToNode: "risky"},
		{FromNode: "risky", ToNode: "finish", Condition: "outcome=success"},
	}
	g := New("cap", nodes, edges, nil, "")

	registry := NewRegistry()
	registry.Register(ShapeStart, NodeHandlerFunc(handleStart))
	registry.Register(ShapeExit, NodeHandlerFunc(handleExit))
	registry.Register(ShapeAction, NodeHandlerFunc(func(context.Context, Node, *Context, *PipelineGraph) Outcome {
		return Fail("always fails")
	}))
	runner := NewRunner(registry)

	result, err := runner.Run(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, StatusFail, result.FinalStatus)
}

func TestRunner_RetryCapExceededFallsThroughToFallbackTarget(t *testing.T) {
	nodes := map[string]Node{
		"start":  {ID: "start", Shape: ShapeStart},
		"flaky":  {ID: "flaky", Shape: ShapeAction, Attributes: map[string]string{"max_retries": "2", "fallback_retry_target": "giveup"}},
		"giveup": {ID: "giveup", Shape: ShapeExit},
	}
	edges := []Edge{
		{FromNode: "start", ToNode: "flaky"},
		{FromNode: "flaky", ToNode: "flaky", Condition: "outcome=retry"},
	}
	g := New("s3", nodes, edges, nil, "")

	registry := NewRegistry()
	registry.Register(ShapeStart, NodeHandlerFunc(handleStart))
	registry.Register(ShapeExit, NodeHandlerFunc(handleExit))
	registry.Register(ShapeAction, NodeHandlerFunc(func(context.Context, Node, *Context, *PipelineGraph) Outcome {
		return Outcome{Status: StatusRetry}
	}))
	runner := NewRunner(registry)

	result, err := runner.Run(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.FinalStatus)
	assert.Equal(t, []string{"start", "flaky", "flaky", "flaky", "giveup"}, result.VisitedNodes)
}

func TestRunner_BacksOffBetweenRetriesWhenConfigured(t *testing.T) {
	nodes := map[string]Node{
		"start": {ID: "start", Shape: ShapeStart},
		"risky": {ID: "risky", Shape: ShapeAction, Attributes: map[string]string{
			"retry_target":        "risky",
			"max_retries":         "2",
			"retry_base_delay_ms": "5",
		}},
		"finish": {ID: "finish", Shape: ShapeExit},
	}
	edges := []Edge{
		{FromNode: "start", ToNode: "risky"},
		{FromNode: "risky", ToNode: "finish", Condition: "outcome=success"},
	}
	g := New("backoff", nodes, edges, nil, "")

	calls := 0
	registry := NewRegistry()
	registry.Register(ShapeStart, NodeHandlerFunc(handleStart))
	registry.Register(ShapeExit, NodeHandlerFunc(handleExit))
	registry.Register(ShapeAction, NodeHandlerFunc(func(context.Context, Node, *Context, *PipelineGraph) Outcome {
		calls++
		if calls < 2 {
			return Fail("transient")
		}
		return Success()
	}))
	runner := NewRunner(registry, WithRandSource(rand.New(rand.NewSource(1))))

	started := time.Now()
	result, err := runner.Run(context.Background(), g)
	elapsed := time.Since(started)

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.FinalStatus)
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
}

func TestRunner_ValidationFailureReturnsError(t *testing.T) {
	g := New("broken", map[string]Node{"a": {ID: "a", Shape: ShapeAction}}, nil, nil, "")
	runner := NewRunner(NewDefaultRegistry(SimulationCodergenHandler{}, SimulationCodergenHandler{}))

	_, err := runner.Run(context.Background(), g)
	require.Error(t, err)
	var verr *ValidationFailed
	require.ErrorAs(t, err, &verr)
}
