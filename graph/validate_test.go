package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_SingleStartRequired(t *testing.T) {
	nodes := map[string]Node{
		"action": {ID: "action", Shape: ShapeAction},
		"exit":   {ID: "exit", Shape: ShapeExit},
	}
	g := New("t", nodes, []Edge{{FromNode: "action", ToNode: "exit"}}, nil, "")
	diags := Validate(g)
	assert.True(t, diags.HasErrors())
}

func TestValidate_HappyPath(t *testing.T) {
	nodes := map[string]Node{
		"start": {ID: "start", Shape: ShapeStart},
		"action": {ID: "action", Shape: ShapeAction},
		"exit":   {ID: "exit", Shape: ShapeExit},
	}
	edges := []Edge{
		{FromNode: "start", ToNode: "action"},
		{FromNode: "action", ToNode: "exit"},
	}
	g := New("t", nodes, edges, nil, "")
	diags := Validate(g)
	assert.False(t, diags.HasErrors())
}

func TestValidate_UnreachableNode(t *testing.T) {
	nodes := map[string]Node{
		"start":    {ID: "start", Shape: ShapeStart},
		"exit":     {ID: "exit", Shape: ShapeExit},
		"orphan":   {ID: "orphan", Shape: ShapeAction},
		"orphan2":  {ID: "orphan2", Shape: ShapeExit},
	}
	edges := []Edge{
		{FromNode: "start", ToNode: "exit"},
		{FromNode: "orphan", ToNode: "orphan2"},
	}
	g := New("t", nodes, edges, nil, "")
	diags := Validate(g)
	assert.True(t, diags.HasErrors())
}

func TestValidate_EdgeEndpointMissing(t *testing.T) {
	nodes := map[string]Node{
		"start": {ID: "start", Shape: ShapeStart},
		"exit":  {ID: "exit", Shape: ShapeExit},
	}
	edges := []Edge{{FromNode: "start", ToNode: "ghost"}}
	g := New("t", nodes, edges, nil, "")
	diags := Validate(g)
	assert.True(t, diags.HasErrors())
}

func TestValidateOrRaise_ReturnsValidationFailed(t *testing.T) {
	g := New("t", map[string]Node{"a": {ID: "a", Shape: ShapeAction}}, nil, nil, "")
	_, err := ValidateOrRaise(g)
	var verr *ValidationFailed
	assert.ErrorAs(t, err, &verr)
}
