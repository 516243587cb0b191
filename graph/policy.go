package graph

import (
	"math/rand"
	"strconv"
	"time"
)

// RetryPolicy configures the backoff applied between a node's failed/retry
// attempts. NodeRetryPolicy derives it from a Node's own attributes the
// same way NodeMaxRetries (failure_routing.go) derives the attempt cap —
// pipeline authors set "retry_base_delay_ms"/"retry_max_delay_ms" node
// attributes rather than constructing a RetryPolicy directly.
type RetryPolicy struct {
	// BaseDelay is the delay before a node's first retry. Zero means retry
	// immediately, the engine's behavior before backoff existed.
	BaseDelay time.Duration

	// MaxDelay caps the exponential growth of BaseDelay across attempts.
	// Zero means uncapped.
	MaxDelay time.Duration
}

// NodeRetryPolicy reads node's backoff attributes. A node with neither
// attribute set gets the zero-value policy: Delay always returns 0.
func NodeRetryPolicy(node Node) RetryPolicy {
	return RetryPolicy{
		BaseDelay: attrMillis(node, "retry_base_delay_ms"),
		MaxDelay:  attrMillis(node, "retry_max_delay_ms"),
	}
}

func attrMillis(node Node, key string) time.Duration {
	raw := node.Attr(key)
	if raw == "" {
		return 0
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// Validate reports whether rp is internally consistent: a nonzero MaxDelay
// must be at least BaseDelay.
func (rp RetryPolicy) Validate() error {
	if rp.MaxDelay > 0 && rp.BaseDelay > 0 && rp.MaxDelay < rp.BaseDelay {
		return ErrInvalidRetryPolicy
	}
	return nil
}

// Delay computes the wait before a node's attempt-th retry (1-based: 1 is
// the first retry after the initial attempt) using exponential backoff with
// jitter: min(BaseDelay*2^(attempt-1), MaxDelay) + jitter[0, BaseDelay]. A
// zero BaseDelay, or attempt < 1, always returns zero so the Runner can
// call this unconditionally without special-casing the no-backoff case.
//
// rng may be nil, in which case a time-seeded source is used — fine for
// production jitter, not for deterministic tests. Runner.Run uses the
// *rand.Rand set by WithRandSource so tests can pin it.
func (rp RetryPolicy) Delay(attempt int, rng *rand.Rand) time.Duration {
	if rp.BaseDelay <= 0 || attempt < 1 {
		return 0
	}

	delay := rp.BaseDelay * time.Duration(1<<uint(attempt-1))
	if rp.MaxDelay > 0 && delay > rp.MaxDelay {
		delay = rp.MaxDelay
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- jitter timing, not security
	}
	return delay + time.Duration(rng.Int63n(int64(rp.BaseDelay)+1))
}
