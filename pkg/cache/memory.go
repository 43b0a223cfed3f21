package cache

import (
	"sync"
	"time"
)

// Entry is a cached analysis result together with its bookkeeping.
type Entry struct {
	Key       string            `json:"key"`
	Value     []byte            `json:"-"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	TTL       time.Duration     `json:"-"`

	accessCount  int64
	lastAccessed time.Time
}

// Expired reports whether the entry's TTL has elapsed at now.
// A zero TTL never expires.
func (e *Entry) Expired(now time.Time) bool {
	return e.TTL > 0 && now.Sub(e.CreatedAt) > e.TTL
}

// memoryTier is the hot tier: a bounded in-process map with a scoring
// eviction policy that prefers to drop rarely-used, stale entries.
type memoryTier struct {
	mu         sync.Mutex
	entries    map[string]*Entry
	maxEntries int
	maxBytes   int64
	curBytes   int64
	evictions  int64
	now        func() time.Time
}

func newMemoryTier(maxEntries int, maxBytes int64) *memoryTier {
	return &memoryTier{
		entries:    make(map[string]*Entry),
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
		now:        time.Now,
	}
}

// get returns the entry and marks the access. Expired entries are removed
// and reported as a miss.
func (m *memoryTier) get(key string) (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	now := m.now()
	if e.Expired(now) {
		m.remove(e)
		return nil, false
	}
	e.accessCount++
	e.lastAccessed = now
	return e, true
}

func (m *memoryTier) put(e *Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.entries[e.Key]; ok {
		m.remove(old)
	}
	e.accessCount = 1
	e.lastAccessed = m.now()
	m.entries[e.Key] = e
	m.curBytes += int64(len(e.Value))

	for m.overCapacity() {
		victim := m.victim()
		if victim == nil || victim.Key == e.Key {
			break
		}
		m.remove(victim)
		m.evictions++
	}
}

func (m *memoryTier) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok {
		m.remove(e)
	}
}

// remove must be called with mu held.
func (m *memoryTier) remove(e *Entry) {
	delete(m.entries, e.Key)
	m.curBytes -= int64(len(e.Value))
}

func (m *memoryTier) overCapacity() bool {
	if m.maxEntries > 0 && len(m.entries) > m.maxEntries {
		return true
	}
	if m.maxBytes > 0 && m.curBytes > m.maxBytes {
		return true
	}
	return false
}

// victim picks the entry with the fewest accesses, breaking ties by the
// oldest last access. Must be called with mu held.
func (m *memoryTier) victim() *Entry {
	var v *Entry
	for _, e := range m.entries {
		if v == nil {
			v = e
			continue
		}
		if e.accessCount < v.accessCount ||
			(e.accessCount == v.accessCount && e.lastAccessed.Before(v.lastAccessed)) {
			v = e
		}
	}
	return v
}

// sweep removes every expired entry and returns how many were dropped.
func (m *memoryTier) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	removed := 0
	for _, e := range m.entries {
		if e.Expired(now) {
			m.remove(e)
			removed++
		}
	}
	return removed
}

func (m *memoryTier) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *memoryTier) bytes() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.curBytes
}
