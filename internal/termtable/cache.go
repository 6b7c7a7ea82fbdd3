package termtable

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bitfunnel-go/termtable/internal/termtreat"
	"github.com/bitfunnel-go/termtable/pkg/config"
	"github.com/bitfunnel-go/termtable/pkg/metrics"
	pkgredis "github.com/bitfunnel-go/termtable/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const treatmentCacheKeyPrefix = "termtable:treatment:"

// treatmentCacheEntry is the JSON representation stored in Redis for a
// single tabulated row configuration.
type treatmentCacheEntry struct {
	Entries []termtreat.RowConfigurationEntry `json:"entries"`
}

// Cache fronts treatment lookups with Redis, deduplicating concurrent
// misses for the same key with a singleflight.Group so a burst of requests
// for a cold IDF class only tabulates it once.
type Cache struct {
	client  *pkgredis.Client
	cfg     config.RedisConfig
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache creates a Cache backed by client. m may be nil to disable metrics.
func NewCache(client *pkgredis.Client, cfg config.RedisConfig, m *metrics.Metrics) *Cache {
	return &Cache{
		client:  client,
		cfg:     cfg,
		metrics: m,
		logger:  slog.Default().With("component", "treatment-cache"),
	}
}

// GetOrCompute returns the cached RowConfiguration for the given treatment
// parameters and IDF class, computing and caching it via computeFn on a
// miss. Concurrent misses for the same key collapse into a single
// computeFn call.
func (c *Cache) GetOrCompute(
	ctx context.Context,
	strategy string,
	density, snr float64,
	variant int32,
	idfClass termtreat.IdfX10,
	computeFn func() (termtreat.RowConfiguration, error),
) (termtreat.RowConfiguration, error) {
	key := c.buildKey(strategy, density, snr, variant, idfClass)

	if cfg, ok := c.get(ctx, key); ok {
		c.recordHit()
		return cfg, nil
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if cfg, ok := c.get(ctx, key); ok {
			return cfg, nil
		}
		cfg, err := computeFn()
		if err != nil {
			return termtreat.RowConfiguration{}, err
		}
		c.set(ctx, key, cfg)
		return cfg, nil
	})
	if err != nil {
		return termtreat.RowConfiguration{}, err
	}
	c.recordMiss()
	return val.(termtreat.RowConfiguration), nil
}

func (c *Cache) get(ctx context.Context, key string) (termtreat.RowConfiguration, bool) {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		return termtreat.RowConfiguration{}, false
	}
	var stored treatmentCacheEntry
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		return termtreat.RowConfiguration{}, false
	}
	cfg := termtreat.RowConfigurationFromEntries(stored.Entries)
	return cfg, true
}

func (c *Cache) set(ctx context.Context, key string, cfg termtreat.RowConfiguration) {
	stored := treatmentCacheEntry{Entries: cfg.Entries()}
	data, err := json.Marshal(stored)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// Invalidate flushes every cached treatment entry.
func (c *Cache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, treatmentCacheKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating treatment cache: %w", err)
	}
	c.logger.Info("treatment cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) recordHit() {
	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
}

func (c *Cache) recordMiss() {
	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
}

func (c *Cache) buildKey(strategy string, density, snr float64, variant int32, idfClass termtreat.IdfX10) string {
	return fmt.Sprintf("%s%s:%.4f:%.4f:%d:%d", treatmentCacheKeyPrefix, strategy, density, snr, variant, idfClass)
}
