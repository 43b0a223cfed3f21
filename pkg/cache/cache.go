// Package cache stores completed analysis results under content-derived
// keys. It layers a bounded in-memory hot tier over a compressed on-disk
// cold tier; hits in the cold tier are promoted back into memory.
package cache

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Config sizes the two tiers. Zero values disable the corresponding bound.
type Config struct {
	Dir        string        `yaml:"dir"`
	MaxEntries int           `yaml:"max_entries"`
	MaxBytes   int64         `yaml:"max_bytes"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// Stats is a point-in-time snapshot of cache effectiveness. Errors counts
// cold-tier failures and corrupt blobs; ColdBytes is the on-disk footprint.
type Stats struct {
	HotHits    int64 `json:"hot_hits"`
	ColdHits   int64 `json:"cold_hits"`
	Misses     int64 `json:"misses"`
	Writes     int64 `json:"writes"`
	Evictions  int64 `json:"evictions"`
	Errors     int64 `json:"errors"`
	HotEntries int   `json:"hot_entries"`
	HotBytes   int64 `json:"hot_bytes"`
	ColdBytes  int64 `json:"cold_bytes"`
}

// Cache is the two-tier result cache. All methods are safe for concurrent
// use; operations on the same key serialize so a promote and a write never
// interleave.
type Cache struct {
	cfg    Config
	hot    *memoryTier
	cold   *diskTier
	logger *slog.Logger

	keyMu sync.Map // key -> *sync.Mutex

	hotHits  atomic.Int64
	coldHits atomic.Int64
	misses   atomic.Int64
	writes   atomic.Int64
	errs     atomic.Int64
}

// New opens (creating if needed) the cold tier directory and returns a
// ready cache.
func New(cfg Config, logger *slog.Logger) (*Cache, error) {
	cold, err := newDiskTier(cfg.Dir)
	if err != nil {
		return nil, err
	}
	return &Cache{
		cfg:    cfg,
		hot:    newMemoryTier(cfg.MaxEntries, cfg.MaxBytes),
		cold:   cold,
		logger: logger.With("component", "cache"),
	}, nil
}

func (c *Cache) lockKey(key string) func() {
	v, _ := c.keyMu.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Get returns the cached value for key, consulting the hot tier first.
// A cold hit is promoted into the hot tier before returning.
func (c *Cache) Get(key string) ([]byte, bool) {
	unlock := c.lockKey(key)
	defer unlock()

	if e, ok := c.hot.get(key); ok {
		c.hotHits.Add(1)
		return e.Value, true
	}
	e, ok, err := c.cold.get(key)
	if err != nil {
		c.errs.Add(1)
		c.logger.Warn("cold tier read failed", "key", key, "error", err)
	}
	if ok {
		c.coldHits.Add(1)
		c.hot.put(e)
		c.logger.Debug("promoted cold entry",
			"key", key,
			"size", humanize.Bytes(uint64(len(e.Value))))
		return e.Value, true
	}
	c.misses.Add(1)
	return nil, false
}

// Put stores value in both tiers under key. A failed cold write is logged
// but does not fail the call; the hot tier still holds the entry.
func (c *Cache) Put(key string, value []byte, metadata map[string]string) {
	unlock := c.lockKey(key)
	defer unlock()

	e := &Entry{
		Key:       key,
		Value:     value,
		Metadata:  metadata,
		CreatedAt: time.Now(),
		TTL:       c.cfg.DefaultTTL,
	}
	c.hot.put(e)
	if err := c.cold.put(e); err != nil {
		c.errs.Add(1)
		c.logger.Warn("cold tier write failed", "key", key, "error", err)
	}
	c.writes.Add(1)
	c.logger.Debug("cached result",
		"key", key,
		"size", humanize.Bytes(uint64(len(value))))
}

// Delete removes key from both tiers.
func (c *Cache) Delete(key string) {
	unlock := c.lockKey(key)
	defer unlock()

	c.hot.delete(key)
	c.cold.delete(key)
}

// Sweep drops expired entries from both tiers. Intended to run from the
// retention service.
func (c *Cache) Sweep() (int, error) {
	removed := c.hot.sweep()
	coldRemoved, err := c.cold.sweep()
	if err != nil {
		c.errs.Add(1)
	}
	removed += coldRemoved
	if removed > 0 {
		c.logger.Info("swept expired cache entries", "removed", removed)
	}
	return removed, err
}

// Stats returns a snapshot of cache counters. ColdBytes walks the cold
// tier, so Stats stays off hot paths.
func (c *Cache) Stats() Stats {
	c.hot.mu.Lock()
	evictions := c.hot.evictions
	c.hot.mu.Unlock()
	return Stats{
		HotHits:    c.hotHits.Load(),
		ColdHits:   c.coldHits.Load(),
		Misses:     c.misses.Load(),
		Writes:     c.writes.Load(),
		Evictions:  evictions,
		Errors:     c.errs.Load(),
		HotEntries: c.hot.len(),
		HotBytes:   c.hot.bytes(),
		ColdBytes:  c.cold.bytes(),
	}
}
