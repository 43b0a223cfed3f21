// Package status tracks the live state of one analysis and publishes
// immutable snapshots to subscribers on every mutation.
package status

import (
	"sync"
	"time"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

// Phase values set by the dispatch loop.
const (
	PhaseIdle      = "idle"
	PhaseQueued    = "queued"
	PhaseChunking  = "chunking"
	PhaseAnalyzing = "analyzing"
	PhaseCompleted = "completed"
	PhaseFailed    = "failed"
	PhaseCancelled = "cancelled"
)

// Message levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// messageRingSize bounds how many recent messages a snapshot carries.
const messageRingSize = 50

// Message is one progress annotation from the dispatch loop.
type Message struct {
	Level   string         `json:"level"`
	Text    string         `json:"text"`
	Details map[string]any `json:"details,omitempty"`
	At      time.Time      `json:"at"`
}

// Snapshot is an immutable copy of the manager's state. Subscribers may
// retain snapshots indefinitely.
type Snapshot struct {
	Phase     string               `json:"phase"`
	Progress  models.ProgressState `json:"progress"`
	Usage     models.UsageCounters `json:"usage"`
	Messages  []Message            `json:"messages,omitempty"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Subscriber receives a fresh snapshot after every mutation. Callbacks run
// outside the manager's lock and must not block for long.
type Subscriber func(Snapshot)

// Manager holds the authoritative progress/usage state for one analysis.
type Manager struct {
	mu       sync.Mutex
	phase    string
	progress models.ProgressState
	usage    models.UsageCounters
	messages []Message
	subs     map[int]Subscriber
	nextSub  int
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		phase: PhaseIdle,
		subs:  make(map[int]Subscriber),
		now:   time.Now,
	}
}

// SetPhase records the current lifecycle phase.
func (m *Manager) SetPhase(phase string) {
	m.mutate(func() { m.phase = phase })
}

// UpdateProgress advances chunk and token counters. StartedAt is stamped on
// the first update.
func (m *Manager) UpdateProgress(currentChunk, totalChunks, processedTokens, estimatedTotal int) {
	m.mutate(func() {
		if m.progress.StartedAt.IsZero() {
			m.progress.StartedAt = m.now()
		}
		m.progress.CurrentChunk = currentChunk
		m.progress.TotalChunks = totalChunks
		m.progress.ProcessedTokens = processedTokens
		m.progress.EstimatedTotalTokens = estimatedTotal
	})
}

// RecordMessage appends to the bounded message ring.
func (m *Manager) RecordMessage(level, text string, details map[string]any) {
	m.mutate(func() {
		m.appendMessage(Message{Level: level, Text: text, Details: details, At: m.now()})
	})
}

// RecordUsage accumulates billable usage for one upstream round trip.
func (m *Manager) RecordUsage(inputTokens, outputTokens int, costUSD float64) {
	m.mutate(func() {
		m.usage.Requests++
		m.usage.InputTokens += inputTokens
		m.usage.OutputTokens += outputTokens
		m.usage.CostUSD += costUSD
	})
}

// RecordError counts a dispatch error and logs it into the message ring.
func (m *Manager) RecordError(text string) {
	m.mutate(func() {
		m.usage.Errors++
		m.appendMessage(Message{Level: LevelError, Text: text, At: m.now()})
	})
}

// RecordCancellation counts a cancellation and notes the reason.
func (m *Manager) RecordCancellation(reason string) {
	m.mutate(func() {
		m.usage.Cancellations++
		m.phase = PhaseCancelled
		m.appendMessage(Message{Level: LevelWarning, Text: "cancelled: " + reason, At: m.now()})
	})
}

// Subscribe registers cb and returns an unsubscribe func. cb immediately
// receives the current snapshot.
func (m *Manager) Subscribe(cb Subscriber) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = cb
	snap := m.snapshotLocked()
	m.mu.Unlock()

	cb(snap)
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Snapshot returns an immutable copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// appendMessage must be called with mu held (via mutate).
func (m *Manager) appendMessage(msg Message) {
	m.messages = append(m.messages, msg)
	if len(m.messages) > messageRingSize {
		m.messages = m.messages[len(m.messages)-messageRingSize:]
	}
}

// mutate applies fn under the lock, then notifies every subscriber with the
// new snapshot outside the lock.
func (m *Manager) mutate(fn func()) {
	m.mu.Lock()
	fn()
	snap := m.snapshotLocked()
	subs := make([]Subscriber, 0, len(m.subs))
	for _, cb := range m.subs {
		subs = append(subs, cb)
	}
	m.mu.Unlock()

	for _, cb := range subs {
		cb(snap)
	}
}

// snapshotLocked must be called with mu held.
func (m *Manager) snapshotLocked() Snapshot {
	msgs := make([]Message, len(m.messages))
	copy(msgs, m.messages)
	return Snapshot{
		Phase:     m.phase,
		Progress:  m.progress,
		Usage:     m.usage,
		Messages:  msgs,
		UpdatedAt: m.now(),
	}
}
