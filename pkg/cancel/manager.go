package cancel

import (
	"log/slog"
	"sync"
	"time"
)

// Manager is the process-wide token registry. It owns no token lifecycle
// beyond lookup: the dispatch that created a token remains responsible for
// acting on its cancellation.
type Manager struct {
	mu     sync.RWMutex
	tokens map[string]*Token
}

// NewManager creates an empty token registry.
func NewManager() *Manager {
	return &Manager{tokens: make(map[string]*Token)}
}

// NewToken creates and registers a fresh token. The id is auto-generated
// when empty.
func (m *Manager) NewToken(id string) *Token {
	t := NewToken(id)
	m.mu.Lock()
	m.tokens[t.ID()] = t
	m.mu.Unlock()
	return t
}

// Get returns the token with the given id, or nil.
func (m *Manager) Get(id string) *Token {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens[id]
}

// Cancel cancels the token with the given id. Returns false when the id is
// unknown or the token was already cancelled.
func (m *Manager) Cancel(id, reason string) bool {
	m.mu.RLock()
	t := m.tokens[id]
	m.mu.RUnlock()
	if t == nil || t.Cancelled() {
		return false
	}
	t.Cancel(reason)
	return true
}

// CancelAll cancels every live token. Used during shutdown.
func (m *Manager) CancelAll(reason string) int {
	m.mu.RLock()
	tokens := make([]*Token, 0, len(m.tokens))
	for _, t := range m.tokens {
		tokens = append(tokens, t)
	}
	m.mu.RUnlock()

	cancelled := 0
	for _, t := range tokens {
		if !t.Cancelled() {
			t.Cancel(reason)
			cancelled++
		}
	}
	if cancelled > 0 {
		slog.Info("Cancelled all active tokens", "count", cancelled, "reason", reason)
	}
	return cancelled
}

// Remove unregisters a token. Called by the dispatch when it finishes.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.tokens, id)
	m.mu.Unlock()
}

// CleanupOlderThan removes tokens whose cancellation is older than age.
// Live tokens are never removed. Returns the number removed.
func (m *Manager) CleanupOlderThan(age time.Duration) int {
	cutoff := time.Now().Add(-age)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, t := range m.tokens {
		at := t.CancelledAt()
		if !at.IsZero() && at.Before(cutoff) {
			delete(m.tokens, id)
			removed++
		}
	}
	return removed
}

// ActiveCount returns the number of registered tokens not yet cancelled.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	active := 0
	for _, t := range m.tokens {
		if !t.Cancelled() {
			active++
		}
	}
	return active
}
