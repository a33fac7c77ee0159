package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_QueryConcurrency(t *testing.T) {
	c := NewController(Config{MaxConcurrentQueries: 2})

	require.NoError(t, c.AcquireQuery(context.Background()))
	require.NoError(t, c.AcquireQuery(context.Background()))
	assert.Equal(t, int64(2), c.InFlight())

	c.ReleaseQuery()
	assert.Equal(t, int64(1), c.InFlight())
	require.NoError(t, c.AcquireQuery(context.Background()))
	assert.Equal(t, int64(2), c.InFlight())
}

func TestController_AcquireQueryContextCanceled(t *testing.T) {
	c := NewController(Config{MaxConcurrentQueries: 1})
	require.NoError(t, c.AcquireQuery(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireQuery(ctx))
}

func TestController_DefaultsToSingleQuery(t *testing.T) {
	c := NewController(Config{})
	require.NoError(t, c.AcquireQuery(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireQuery(ctx))
}

func TestController_AcquireUploadWithinBurst(t *testing.T) {
	c := NewController(Config{UploadLimitBytesPerSec: 1024})

	require.NoError(t, c.AcquireUpload(context.Background(), 512))
}

func TestController_AcquireUploadChunksOverBurst(t *testing.T) {
	c := NewController(Config{UploadLimitBytesPerSec: 64})

	// Larger than the burst: the request is split into chunks rather than
	// rejected outright, so the short deadline is what stops it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := c.AcquireUpload(ctx, 1<<20)
	require.Error(t, err)
	assert.ErrorContains(t, err, "deadline")
}

func TestController_UnlimitedUpload(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireUpload(context.Background(), 1<<30))
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireQuery(context.Background()))
	c.ReleaseQuery()
	assert.Equal(t, int64(0), c.InFlight())
	require.NoError(t, c.AcquireUpload(context.Background(), 1))
}
