package matrix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/okapigo/okapi/blobstore"
	"github.com/okapigo/okapi/codec"
	"golang.org/x/sync/singleflight"
)

// UploadThrottle gates store writes by byte count. resource.Controller
// satisfies it.
type UploadThrottle interface {
	AcquireUpload(ctx context.Context, bytes int) error
}

// CacheConfig configures a Cache. The zero value keeps matrices in memory
// only.
type CacheConfig struct {
	// Store, if non-nil, persists encoded matrices so later processes can
	// skip the rebuild. Misses and store failures fall back to
	// recomputation.
	Store blobstore.Store
	// Codec encodes persisted matrices. Defaults to codec.Default.
	Codec codec.Codec
	// Compression applied to encoded matrices before persisting.
	Compression codec.Compression
	// UploadThrottle, if non-nil, throttles store writes.
	UploadThrottle UploadThrottle
	// Logger records cache activity. Defaults to a disabled logger.
	Logger *slog.Logger
}

// Cache memoizes term-document matrices as a pure function of their key.
// The key must capture everything the matrix depends on: the analysis
// configuration and the index content. Construction per key happens at most
// once, even under concurrent first use.
type Cache struct {
	cfg CacheConfig

	group singleflight.Group
	mu    sync.RWMutex
	built map[string]*TermDocument
}

// NewCache creates a Cache with the given configuration.
func NewCache(cfg CacheConfig) *Cache {
	if cfg.Codec == nil {
		cfg.Codec = codec.Default
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cache{
		cfg:   cfg,
		built: make(map[string]*TermDocument),
	}
}

// Get returns the matrix for the key, building it with build on a miss.
// Concurrent callers for the same key share one build.
func (c *Cache) Get(ctx context.Context, key string, build func() *TermDocument) (*TermDocument, error) {
	c.mu.RLock()
	td, ok := c.built[key]
	c.mu.RUnlock()
	if ok {
		return td, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		td, ok := c.built[key]
		c.mu.RUnlock()
		if ok {
			return td, nil
		}

		td = c.load(ctx, key)
		if td == nil {
			td = build()
			c.persist(ctx, key, td)
		}

		c.mu.Lock()
		c.built[key] = td
		c.mu.Unlock()
		return td, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TermDocument), nil
}

// Invalidate drops all memoized matrices. Persisted artifacts are left in
// place; stale ones are unreachable because keys embed the index
// fingerprint and version.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.built = make(map[string]*TermDocument)
	c.mu.Unlock()
}

func (c *Cache) artifactName(key string) string {
	return fmt.Sprintf("%s.%s.mtx", key, c.cfg.Codec.Name())
}

// load tries the persistent store. Any failure degrades to a rebuild; the
// matrix holds no independent truth, so a lost or corrupt artifact is never
// fatal.
func (c *Cache) load(ctx context.Context, key string) *TermDocument {
	if c.cfg.Store == nil {
		return nil
	}
	name := c.artifactName(key)

	block, err := c.cfg.Store.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) {
			c.cfg.Logger.WarnContext(ctx, "matrix cache read failed", "artifact", name, "error", err)
		}
		return nil
	}

	data, err := codec.Decompress(block)
	if err != nil {
		c.cfg.Logger.WarnContext(ctx, "matrix cache artifact corrupt", "artifact", name, "error", err)
		return nil
	}
	td, err := Decode(c.cfg.Codec, data)
	if err != nil {
		c.cfg.Logger.WarnContext(ctx, "matrix cache artifact undecodable", "artifact", name, "error", err)
		return nil
	}

	c.cfg.Logger.DebugContext(ctx, "matrix cache hit", "artifact", name)
	return td
}

// persist writes the matrix to the store, best effort.
func (c *Cache) persist(ctx context.Context, key string, td *TermDocument) {
	if c.cfg.Store == nil {
		return
	}
	name := c.artifactName(key)

	data, err := td.Encode(c.cfg.Codec)
	if err != nil {
		c.cfg.Logger.WarnContext(ctx, "matrix encode failed", "artifact", name, "error", err)
		return
	}
	block, err := codec.Compress(c.cfg.Compression, data)
	if err != nil {
		c.cfg.Logger.WarnContext(ctx, "matrix compress failed", "artifact", name, "error", err)
		return
	}

	if c.cfg.UploadThrottle != nil {
		if err := c.cfg.UploadThrottle.AcquireUpload(ctx, len(block)); err != nil {
			c.cfg.Logger.WarnContext(ctx, "matrix cache write throttled out", "artifact", name, "error", err)
			return
		}
	}
	if err := c.cfg.Store.Put(ctx, name, block); err != nil {
		c.cfg.Logger.WarnContext(ctx, "matrix cache write failed", "artifact", name, "error", err)
		return
	}
	c.cfg.Logger.DebugContext(ctx, "matrix cache stored", "artifact", name, "bytes", len(block))
}
