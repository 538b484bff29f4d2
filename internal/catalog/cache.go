package catalog

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/vaanisetu/scheme-cli/internal/model"
	"github.com/vaanisetu/scheme-cli/internal/resilience"
)

// Status values describe which source populated the cache.
const (
	StatusConnected    = "connected"
	StatusFallback     = "fallback"
	StatusDisconnected = "disconnected"
)

type snapshot struct {
	schemes []model.Scheme
	status  string
}

// Cache is the process-wide scheme catalog handle. Loading swaps an
// immutable snapshot atomically, so a racing reload can never corrupt
// readers; scoring only ever sees a consistent catalog.
type Cache struct {
	primary  Source
	fallback Source
	snap     atomic.Pointer[snapshot]
}

// NewCache creates an unloaded cache. Either source may be nil.
func NewCache(primary, fallback Source) *Cache {
	c := &Cache{primary: primary, fallback: fallback}
	c.snap.Store(&snapshot{status: StatusDisconnected})
	return c
}

// Load fetches from the primary source, falling back to the bundled
// snapshot on failure. Both failing yields an empty catalog rather than an
// error: startup must not block on catalog availability.
func (c *Cache) Load(ctx context.Context) {
	if c.primary != nil {
		// Transient database errors during startup are retried with backoff
		// before giving up on the primary.
		schemes, err := resilience.DoVal(ctx, retryConfig(), func(ctx context.Context) ([]model.Scheme, error) {
			return c.primary.FetchAll(ctx)
		})
		if err == nil {
			c.snap.Store(&snapshot{schemes: schemes, status: StatusConnected})
			zap.L().Info("catalog: loaded from primary source", zap.Int("schemes", len(schemes)))
			return
		}
		zap.L().Warn("catalog: primary source failed, trying fallback", zap.Error(err))
	}

	if c.fallback != nil {
		schemes, err := c.fallback.FetchAll(ctx)
		if err == nil {
			c.snap.Store(&snapshot{schemes: schemes, status: StatusFallback})
			zap.L().Info("catalog: loaded from fallback snapshot", zap.Int("schemes", len(schemes)))
			return
		}
		zap.L().Error("catalog: fallback load failed", zap.Error(err))
	}

	c.snap.Store(&snapshot{status: StatusDisconnected})
}

func retryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.OnRetry = resilience.RetryLogger("catalog", "fetch_schemes")
	return cfg
}

// Reload re-runs the full load sequence, atomically replacing the snapshot.
func (c *Cache) Reload(ctx context.Context) {
	c.Load(ctx)
}

// Schemes returns the current snapshot. Callers must not mutate it.
func (c *Cache) Schemes() []model.Scheme {
	return c.snap.Load().schemes
}

// Status reports which source populated the current snapshot.
func (c *Cache) Status() string {
	return c.snap.Load().status
}

// Len returns the number of cached schemes.
func (c *Cache) Len() int {
	return len(c.snap.Load().schemes)
}
