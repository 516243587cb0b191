package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiscoverFile resolves filename against a search cascade: the pipeline
// directory, then each configured search path in order, then the global
// ~/.orchestra directory. Returns the first candidate that exists as a
// regular file, or an error listing every path that was tried.
func DiscoverFile(filename, pipelineDir string, searchPaths []string, globalDir string) (string, error) {
	var searched []string

	if pipelineDir != "" {
		candidate := filepath.Join(pipelineDir, filename)
		searched = append(searched, candidate)
		if isFile(candidate) {
			return candidate, nil
		}
	}

	for _, path := range searchPaths {
		candidate := filepath.Join(path, filename)
		searched = append(searched, candidate)
		if isFile(candidate) {
			return candidate, nil
		}
	}

	if globalDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			globalDir = filepath.Join(home, ".orchestra")
		}
	}
	if globalDir != "" {
		candidate := filepath.Join(globalDir, filename)
		searched = append(searched, candidate)
		if isFile(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("could not find %q. Searched:\n%s", filename, formatSearched(searched))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func formatSearched(paths []string) string {
	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = "  - " + p
	}
	return strings.Join(lines, "\n")
}
