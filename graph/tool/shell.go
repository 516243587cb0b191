package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// shellTimeout bounds how long a single shell tool invocation may run before
// it is killed and reported as a timeout.
const shellTimeout = 120 * time.Second

// ShellTool runs a fixed shell command template, substituting "{param}"
// placeholders from the call input before execution.
//
// Input parameters are whatever keys the command template references; each
// value must be a string. Output is a single "output" string combining
// stdout with a trailing STDERR/exit-code summary when the command fails.
//
// Example usage:
//
//	t := NewShellTool("lint", "golangci-lint run {path}", "Lint a package")
//	result, err := t.Call(ctx, map[string]interface{}{"path": "./..."})
//	fmt.Println(result["output"])
type ShellTool struct {
	name        string
	command     string
	description string
	schema      *jsonschema.Schema
}

// NewShellTool creates a shell tool bound to the given command template.
// If description is empty, a default derived from the command is used.
func NewShellTool(name, command, description string) *ShellTool {
	if description == "" {
		description = fmt.Sprintf("Run: %s", command)
	}
	return &ShellTool{name: name, command: command, description: description}
}

// WithParamSchema compiles a JSON Schema describing this tool's declared
// {param} kwargs and attaches it to the tool: subsequent Call invocations
// reject input that does not satisfy it before any substitution happens.
func (s *ShellTool) WithParamSchema(schema map[string]interface{}) (*ShellTool, error) {
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("compile schema for tool %q: %w", s.name, err)
	}
	s.schema = compiled
	return s, nil
}

func compileSchema(schema map[string]interface{}) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	resourceName := "schema.json"
	if err := compiler.AddResource(resourceName, strings.NewReader(string(b))); err != nil {
		return nil, err
	}
	return compiler.Compile(resourceName)
}

// Name returns the tool identifier.
func (s *ShellTool) Name() string {
	return s.name
}

// Description returns the human-readable tool description.
func (s *ShellTool) Description() string {
	return s.description
}

// Call substitutes input parameters into the command template and runs it
// through the shell, capped at a 120-second timeout.
func (s *ShellTool) Call(ctx context.Context, input map[string]interface{}) (map[string]interface{}, error) {
	if s.schema != nil {
		if err := s.schema.Validate(input); err != nil {
			return nil, fmt.Errorf("invalid input for tool %q: %w", s.name, err)
		}
	}

	cmdStr := s.command
	for key, value := range input {
		valueStr, ok := value.(string)
		if !ok {
			continue
		}
		cmdStr = strings.ReplaceAll(cmdStr, fmt.Sprintf("{%s}", key), valueStr)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, shellTimeout)
	defer cancel()

	cmd := exec.CommandContext(timeoutCtx, "sh", "-c", cmdStr)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if timeoutCtx.Err() == context.DeadlineExceeded {
		return map[string]interface{}{
			"output": fmt.Sprintf("Error: command '%s' timed out after %s", s.name, shellTimeout),
		}, nil
	}

	output := stdout.String()
	if err != nil {
		if stderr.Len() > 0 {
			output += fmt.Sprintf("\nSTDERR: %s", stderr.String())
		}
		output += fmt.Sprintf("\nExit code: %d", exitCode(err))
	}

	return map[string]interface{}{"output": output}, nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
