package graph

import "regexp"

var (
	apiKeyPattern = regexp.MustCompile(`(sk-|key-)[a-zA-Z0-9_-]+`)
	bearerPattern = regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_-]+`)
)

// SanitizeError strips API keys and bearer tokens from an error message
// before it reaches logs or events. It is idempotent: sanitizing an
// already-sanitized message is a no-op.
func SanitizeError(message string) string {
	message = apiKeyPattern.ReplaceAllString(message, "[REDACTED]")
	message = bearerPattern.ReplaceAllString(message, "Bearer [REDACTED]")
	return message
}
