// Package resource implements global limits shared by the query path and
// background artifact uploads. All Controller methods are nil-safe no-ops,
// so resource limiting stays optional without nil checks at call sites.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentQueries caps how many searches may run at once.
	// If 0, defaults to 1.
	MaxConcurrentQueries int64

	// UploadLimitBytesPerSec throttles cache artifact uploads.
	// If 0, unlimited.
	UploadLimitBytesPerSec int64
}

// Controller manages query concurrency and upload throughput.
type Controller struct {
	cfg Config

	querySem *semaphore.Weighted
	inFlight atomic.Int64

	uploadLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentQueries <= 0 {
		cfg.MaxConcurrentQueries = 1
	}

	c := &Controller{
		cfg:      cfg,
		querySem: semaphore.NewWeighted(cfg.MaxConcurrentQueries),
	}

	if cfg.UploadLimitBytesPerSec > 0 {
		c.uploadLimiter = rate.NewLimiter(
			rate.Limit(cfg.UploadLimitBytesPerSec), int(cfg.UploadLimitBytesPerSec))
	}

	return c
}

// AcquireQuery reserves a query slot, blocking until one frees up or the
// context is done.
func (c *Controller) AcquireQuery(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.querySem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// ReleaseQuery releases a query slot.
func (c *Controller) ReleaseQuery() {
	if c == nil {
		return
	}
	c.querySem.Release(1)
	c.inFlight.Add(-1)
}

// InFlight returns the number of queries currently holding a slot.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// AcquireUpload waits until the upload limit allows the given byte count.
// Requests larger than the limiter burst are split into burst-sized chunks,
// so arbitrarily big payloads still pass instead of erroring out.
func (c *Controller) AcquireUpload(ctx context.Context, bytes int) error {
	if c == nil || c.uploadLimiter == nil {
		return nil
	}
	burst := c.uploadLimiter.Burst()
	if burst <= 0 {
		return nil
	}
	for bytes > 0 {
		chunk := bytes
		if chunk > burst {
			chunk = burst
		}
		if err := c.uploadLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		bytes -= chunk
	}
	return nil
}
