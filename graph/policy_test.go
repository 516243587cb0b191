package graph

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeRetryPolicy_DefaultsToZeroDelay(t *testing.T) {
	node := Node{ID: "n"}
	rp := NodeRetryPolicy(node)
	assert.Equal(t, time.Duration(0), rp.BaseDelay)
	assert.Equal(t, time.Duration(0), rp.MaxDelay)
	assert.Equal(t, time.Duration(0), rp.Delay(1, nil))
}

func TestNodeRetryPolicy_ReadsAttributes(t *testing.T) {
	node := Node{ID: "n", Attributes: map[string]string{
		"retry_base_delay_ms": "100",
		"retry_max_delay_ms":  "3000",
	}}
	rp := NodeRetryPolicy(node)
	assert.Equal(t, 100*time.Millisecond, rp.BaseDelay)
	assert.Equal(t, 3000*time.Millisecond, rp.MaxDelay)
}

func TestNodeRetryPolicy_UnparseableAttributeFallsBackToZero(t *testing.T) {
	node := Node{ID: "n", Attributes: map[string]string{"retry_base_delay_ms": "not-a-number"}}
	assert.Equal(t, time.Duration(0), NodeRetryPolicy(node).BaseDelay)
}

func TestRetryPolicy_Validate(t *testing.T) {
	require.NoError(t, RetryPolicy{BaseDelay: time.Second, MaxDelay: 2 * time.Second}.Validate())
	require.NoError(t, RetryPolicy{}.Validate())
	require.ErrorIs(t, RetryPolicy{BaseDelay: 2 * time.Second, MaxDelay: time.Second}.Validate(), ErrInvalidRetryPolicy)
}

func TestRetryPolicy_Delay(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rp := RetryPolicy{BaseDelay: time.Second, MaxDelay: 30 * time.Second}

	d := rp.Delay(1, rng)
	assert.GreaterOrEqual(t, d, time.Second)
	assert.Less(t, d, 2*time.Second)

	d = rp.Delay(3, rng)
	assert.GreaterOrEqual(t, d, 4*time.Second)
	assert.Less(t, d, 5*time.Second)

	// Large attempt counts must still cap at MaxDelay instead of overflowing.
	d = rp.Delay(10, rng)
	assert.GreaterOrEqual(t, d, 30*time.Second)
	assert.Less(t, d, 31*time.Second)
}

func TestRetryPolicy_Delay_ZeroBaseOrAttemptReturnsZero(t *testing.T) {
	rp := RetryPolicy{BaseDelay: time.Second, MaxDelay: 10 * time.Second}
	assert.Equal(t, time.Duration(0), rp.Delay(0, nil))
	assert.Equal(t, time.Duration(0), RetryPolicy{}.Delay(5, nil))
}
