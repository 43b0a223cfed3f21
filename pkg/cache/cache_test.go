package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

func newTestCache(t *testing.T, cfg Config) *Cache {
	t.Helper()
	if cfg.Dir == "" {
		cfg.Dir = t.TempDir()
	}
	c, err := New(cfg, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	require.NoError(t, err)
	return c
}

func TestKey_DeterministicAndDistinct(t *testing.T) {
	content := []byte("ANR in com.example.app")

	k1 := Key(content, models.ModeQuick, "claude-haiku-3-5")
	k2 := Key(content, models.ModeQuick, "claude-haiku-3-5")
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 32, "128-bit hex key")

	assert.NotEqual(t, k1, Key(content, models.ModeIntelligent, "claude-haiku-3-5"))
	assert.NotEqual(t, k1, Key(content, models.ModeQuick, "gpt-4o"))
	assert.NotEqual(t, k1, Key([]byte("other content"), models.ModeQuick, "claude-haiku-3-5"))
}

func TestKey_SharedPrefixDiffers(t *testing.T) {
	prefix := make([]byte, 2000)
	for i := range prefix {
		prefix[i] = 'a'
	}
	a := append(append([]byte{}, prefix...), []byte("tail one")...)
	b := append(append([]byte{}, prefix...), []byte("tail two")...)

	assert.NotEqual(t, Key(a, models.ModeQuick, "m"), Key(b, models.ModeQuick, "m"))
}

func TestCache_PutGetRoundTrip(t *testing.T) {
	c := newTestCache(t, Config{})

	key := Key([]byte("content"), models.ModeQuick, "m")
	c.Put(key, []byte("analysis result"), map[string]string{"model": "m"})

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []byte("analysis result"), got)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.HotHits)
	assert.Equal(t, int64(1), stats.Writes)
}

func TestCache_ColdHitPromotes(t *testing.T) {
	dir := t.TempDir()
	c1 := newTestCache(t, Config{Dir: dir})
	key := Key([]byte("content"), models.ModeQuick, "m")
	c1.Put(key, []byte("persisted"), nil)

	// A fresh cache over the same directory has a cold hot tier.
	c2 := newTestCache(t, Config{Dir: dir})
	got, ok := c2.Get(key)
	require.True(t, ok)
	assert.Equal(t, []byte("persisted"), got)
	assert.Equal(t, int64(1), c2.Stats().ColdHits)

	// Second read is served hot.
	_, ok = c2.Get(key)
	require.True(t, ok)
	assert.Equal(t, int64(1), c2.Stats().HotHits)
}

func TestCache_ExpiredIsMiss(t *testing.T) {
	c := newTestCache(t, Config{DefaultTTL: time.Second})
	key := Key([]byte("content"), models.ModeQuick, "m")
	c.Put(key, []byte("v"), nil)

	past := time.Now().Add(-time.Hour)
	c.hot.now = func() time.Time { return past.Add(2 * time.Hour) }
	c.cold.now = c.hot.now

	_, ok := c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Stats().Misses)
}

func TestCache_EvictsLeastUsed(t *testing.T) {
	c := newTestCache(t, Config{MaxEntries: 2})

	c.Put("aa1", []byte("one"), nil)
	c.Put("bb2", []byte("two"), nil)
	// Touch aa1 so bb2 becomes the coldest entry.
	_, ok := c.Get("aa1")
	require.True(t, ok)

	c.Put("cc3", []byte("three"), nil)

	assert.Equal(t, 2, c.hot.len())
	_, hotA := c.hot.get("aa1")
	_, hotB := c.hot.get("bb2")
	assert.True(t, hotA, "frequently accessed entry survives")
	assert.False(t, hotB, "least accessed entry evicted")
	assert.GreaterOrEqual(t, c.Stats().Evictions, int64(1))
}

func TestCache_DeleteRemovesBothTiers(t *testing.T) {
	dir := t.TempDir()
	c := newTestCache(t, Config{Dir: dir})
	key := Key([]byte("content"), models.ModeQuick, "m")
	c.Put(key, []byte("v"), nil)

	c.Delete(key)

	_, ok := c.Get(key)
	assert.False(t, ok)
	_, err := os.Stat(filepath.Join(dir, key[:2], key+".blob"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskTier_CorruptBlobIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := newTestCache(t, Config{Dir: dir})
	key := Key([]byte("content"), models.ModeQuick, "m")
	c.Put(key, []byte("v"), nil)

	path := filepath.Join(dir, key[:2], key+".blob")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	// Evict the hot copy so the read reaches the cold tier.
	c.hot.delete(key)

	_, ok := c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Stats().Errors, "corrupt blob counted")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt blob removed")
}

func TestStats_ColdBytesTracksDiskFootprint(t *testing.T) {
	c := newTestCache(t, Config{})

	assert.Zero(t, c.Stats().ColdBytes)

	c.Put("aa11", []byte("first entry"), nil)
	after := c.Stats().ColdBytes
	assert.Positive(t, after)

	c.Put("bb22", []byte("second entry"), nil)
	assert.Greater(t, c.Stats().ColdBytes, after)

	c.Delete("aa11")
	c.Delete("bb22")
	assert.Zero(t, c.Stats().ColdBytes)
}

func TestBlob_RoundTripCompressed(t *testing.T) {
	value := make([]byte, 50_000)
	for i := range value {
		value[i] = byte("abcd"[i%4])
	}
	e := &Entry{
		Key:       "deadbeefdeadbeefdeadbeefdeadbeef",
		Value:     value,
		Metadata:  map[string]string{"provider": "anthropic"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		TTL:       time.Hour,
	}

	raw, err := encodeBlob(e)
	require.NoError(t, err)
	assert.Less(t, len(raw), len(value), "repetitive payload compresses")

	got, err := decodeBlob(raw)
	require.NoError(t, err)
	assert.Equal(t, e.Key, got.Key)
	assert.Equal(t, e.Value, got.Value)
	assert.Equal(t, e.Metadata, got.Metadata)
	assert.Equal(t, e.TTL, got.TTL)
}

func TestSweep_RemovesExpired(t *testing.T) {
	dir := t.TempDir()
	c := newTestCache(t, Config{Dir: dir, DefaultTTL: time.Second})
	c.Put("aa11", []byte("old"), nil)

	c.cold.now = func() time.Time { return time.Now().Add(time.Hour) }
	c.hot.now = c.cold.now
	removed, err := c.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 2, removed, "expired entry swept from both tiers")
	assert.Zero(t, c.hot.len(), "hot tier no longer holds the expired entry")
}
