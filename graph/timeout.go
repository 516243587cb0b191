package graph

import (
	"context"
	"fmt"
	"time"
)

// NodeTimeout determines the timeout duration for a node using precedence:
//  1. An explicit per-node override.
//  2. defaultTimeout (the Runner-wide default).
//  3. 0 (no timeout, unlimited execution).
func NodeTimeout(override, defaultTimeout time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	return defaultTimeout
}

// RunHandlerWithTimeout wraps a NodeHandler.Handle call with timeout
// enforcement. When the timeout elapses before handler returns, the
// context passed to it is cancelled and the result is replaced with a FAIL
// outcome carrying a TimeoutExceeded detail.
func RunHandlerWithTimeout(ctx context.Context, handler NodeHandler, node Node, pctx *Context, g *PipelineGraph, timeout time.Duration) Outcome {
	if timeout <= 0 {
		return handler.Handle(ctx, node, pctx, g)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outcome := handler.Handle(timeoutCtx, node, pctx, g)
	if timeoutCtx.Err() == context.DeadlineExceeded {
		return Fail(fmt.Sprintf("node %s exceeded timeout of %v", node.ID, timeout))
	}
	return outcome
}
