package interview

import (
	"regexp"
	"strings"
)

var (
	bracketPattern = regexp.MustCompile(`^\[(\w)\]\s+(.*)`)
	parenPattern   = regexp.MustCompile(`^(\w)\)\s+(.*)`)
	dashPattern    = regexp.MustCompile(`^(\w)\s*[-\x{2013}]\s+(.*)`)
)

// ParseAccelerator extracts an accelerator key and a clean label from an
// edge label, supporting:
//
//	[K] Label  ->  ("K", "Label")
//	K) Label   ->  ("K", "Label")
//	K - Label  ->  ("K", "Label")
//	Label      ->  ("L", "Label")  (first character fallback)
//
// The key is always uppercased. An empty or whitespace-only label returns
// ("", "").
func ParseAccelerator(label string) (key, clean string) {
	text := strings.TrimSpace(label)
	if text == "" {
		return "", ""
	}

	if m := bracketPattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]), strings.TrimSpace(m[2])
	}
	if m := parenPattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]), strings.TrimSpace(m[2])
	}
	if m := dashPattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1]), strings.TrimSpace(m[2])
	}

	first := string([]rune(text)[0])
	return strings.ToUpper(first), text
}
