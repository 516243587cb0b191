package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_HealthCheckAndPublish(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	require.NoError(t, c.HealthCheck(ctx))

	bundle, err := c.PublishTypeBundle(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", bundle.Version)
	assert.NotEmpty(t, bundle.ID)
	assert.NotEmpty(t, bundle.ContentHash)

	require.Len(t, c.Bundles(), 1)
}

func TestMemoryClient_ClosedClientFailsHealthCheck(t *testing.T) {
	c := NewMemoryClient()
	require.NoError(t, c.Close())

	err := c.HealthCheck(context.Background())
	assert.Error(t, err)

	_, err = c.PublishTypeBundle(context.Background(), "v1")
	assert.Error(t, err)
}

func TestSQLiteClient_HealthCheckAndPublish(t *testing.T) {
	c, err := NewSQLiteClient(":memory:")
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.HealthCheck(ctx))

	bundle, err := c.PublishTypeBundle(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", bundle.Version)
	assert.NotEmpty(t, bundle.ID)
}

func TestSQLiteClient_HealthCheckFailsAfterClose(t *testing.T) {
	c, err := NewSQLiteClient(":memory:")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	err = c.HealthCheck(context.Background())
	assert.Error(t, err)
}
