package tool

import "context"

// Tool is an executable action an LLM can invoke by name, matching the
// model.ToolSpec it advertised to the backend. graph/tool/shell.go and
// graph/tool/http.go are the production implementations; MockTool stands
// in for both in tests.
type Tool interface {
	// Name is the identifier the model's ToolCall.Name must match.
	Name() string

	// Call executes the tool with input shaped like the tool's advertised
	// Schema (may be nil for a parameterless tool) and returns structured
	// output, or an error if input is invalid or execution fails.
	Call(ctx context.Context, input map[string]interface{}) (map[string]interface{}, error)
}
