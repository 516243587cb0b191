// Package prompts loads the YAML prompt-layer files spec.md §6 names as an
// external contract and composes per-node prompts from agent templates.
package prompts

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// promptFile is the required shape of a prompt-layer YAML file: a mapping
// with at least a "content" string key. Any other top-level shape is
// rejected.
type promptFile struct {
	Content *string `yaml:"content"`
}

// LoadPromptLayer reads and validates a single prompt-layer YAML file,
// returning its content string.
func LoadPromptLayer(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt file %s: %w", path, err)
	}

	var raw promptFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("prompt file %s must be a YAML mapping: %w", path, err)
	}
	if raw.Content == nil {
		return "", fmt.Errorf("prompt file %s missing required 'content' key", path)
	}
	return *raw.Content, nil
}

// DiscoverPromptLayers globs pattern (e.g. "prompts/**/*.yaml") rooted at
// dir and returns the matching paths in sorted order.
func DiscoverPromptLayers(dir, pattern string) ([]string, error) {
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob prompt layers under %s: %w", dir, err)
	}
	for i, m := range matches {
		matches[i] = dir + "/" + m
	}
	sort.Strings(matches)
	return matches, nil
}
