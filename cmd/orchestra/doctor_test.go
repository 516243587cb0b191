package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EndlessCommerce/orchestra-sub001/storage"
)

func TestRunDoctorChecks_HealthyStorePublishesBundle(t *testing.T) {
	client := storage.NewMemoryClient()
	var out bytes.Buffer

	err := runDoctorChecks(context.Background(), client, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Storage health: OK")
	assert.Contains(t, out.String(), "Type bundle: OK")
	assert.Len(t, client.Bundles(), 1)
}

func TestRunDoctorChecks_HealthCheckFailureReturnsExitError(t *testing.T) {
	client := storage.NewMemoryClient()
	require.NoError(t, client.Close())
	var out bytes.Buffer

	err := runDoctorChecks(context.Background(), client, &out)

	require.Error(t, err)
	var ee exitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, 1, ee.code)
	assert.Contains(t, out.String(), "Storage health: FAILED")
}
