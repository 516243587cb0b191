package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/zeebo/blake3"
)

// MemoryClient is an in-memory CxdbClient, used in tests and for a
// doctor run against a throwaway store.
type MemoryClient struct {
	mu      sync.RWMutex
	bundles []TypeBundle
	closed  bool
}

// NewMemoryClient creates an empty in-memory CxdbClient.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// HealthCheck reports an error once the client has been closed; otherwise
// it always succeeds since there is no real connection to probe.
func (c *MemoryClient) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return fmt.Errorf("memory client is closed")
	}
	return nil
}

// PublishTypeBundle records a new type bundle in memory.
func (c *MemoryClient) PublishTypeBundle(ctx context.Context, version string) (TypeBundle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return TypeBundle{}, fmt.Errorf("memory client is closed")
	}

	id := ulid.Make().String()
	hash := blake3.Sum256([]byte(version + id))
	bundle := TypeBundle{ID: id, ContentHash: fmt.Sprintf("%x", hash), Version: version}
	c.bundles = append(c.bundles, bundle)
	return bundle, nil
}

// Bundles returns a defensive copy of all published type bundles, in
// publication order.
func (c *MemoryClient) Bundles() []TypeBundle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]TypeBundle, len(c.bundles))
	copy(out, c.bundles)
	return out
}

// Close marks the client closed; subsequent calls fail.
func (c *MemoryClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

var _ CxdbClient = (*MemoryClient)(nil)
