package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	in := "auth failed for sk-abc123XYZ_-9 using Bearer abc.def-ghi"
	out := SanitizeError(in)
	assert.Equal(t, "auth failed for [REDACTED] using Bearer [REDACTED]", out)
}

func TestSanitizeError_Idempotent(t *testing.T) {
	in := "key-deadbeef leaked"
	once := SanitizeError(in)
	twice := SanitizeError(once)
	assert.Equal(t, once, twice)
}

func TestSanitizeError_NoSecretsUnchanged(t *testing.T) {
	in := "connection refused"
	assert.Equal(t, in, SanitizeError(in))
}
