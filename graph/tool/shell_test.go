package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellTool_SubstitutesParams(t *testing.T) {
	s := NewShellTool("echoer", "echo hello {name}", "")
	result, err := s.Call(context.Background(), map[string]interface{}{"name": "world"})
	require.NoError(t, err)
	assert.Contains(t, result["output"], "hello world")
}

func TestShellTool_NonZeroExitReportsExitCodeAndStderr(t *testing.T) {
	s := NewShellTool("failer", "echo oops 1>&2; exit 3", "")
	result, err := s.Call(context.Background(), nil)
	require.NoError(t, err)
	output := result["output"].(string)
	assert.Contains(t, output, "STDERR: oops")
	assert.Contains(t, output, "Exit code: 3")
}

func TestShellTool_DefaultDescription(t *testing.T) {
	s := NewShellTool("x", "ls {dir}", "")
	assert.Equal(t, "Run: ls {dir}", s.Description())
}

func TestShellTool_Name(t *testing.T) {
	s := NewShellTool("greet", "echo hi", "says hi")
	assert.Equal(t, "greet", s.Name())
	assert.Equal(t, "says hi", s.Description())
}

func TestShellTool_WithParamSchema_RejectsInvalidInput(t *testing.T) {
	s, err := NewShellTool("greeter", "echo hello {name}", "").WithParamSchema(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{"type": "string"},
		},
		"required": []interface{}{"name"},
	})
	require.NoError(t, err)

	_, err = s.Call(context.Background(), map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid input for tool "greeter"`)
}

func TestShellTool_WithParamSchema_AcceptsValidInput(t *testing.T) {
	s, err := NewShellTool("greeter", "echo hello {name}", "").WithParamSchema(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{"type": "string"},
		},
		"required": []interface{}{"name"},
	})
	require.NoError(t, err)

	result, err := s.Call(context.Background(), map[string]interface{}{"name": "world"})
	require.NoError(t, err)
	assert.Contains(t, result["output"], "hello world")
}

func TestShellTool_WithParamSchema_CompileErrorReturnsWrappedError(t *testing.T) {
	_, err := NewShellTool("broken", "echo hi", "").WithParamSchema(map[string]interface{}{
		"type": "not-a-real-type",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `compile schema for tool "broken"`)
}
