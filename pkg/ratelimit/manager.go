package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

const (
	minuteWindow = time.Minute
	hourWindow   = time.Hour
	dayWindow    = 24 * time.Hour
)

// Result reports one acquisition attempt. On Allowed the acquisition has
// already been recorded; on deny nothing was recorded.
type Result struct {
	Allowed bool `json:"allowed"`

	// MinuteRemaining is the token budget left in the minute window after
	// this attempt. HourRemaining is the budget left under the day cap,
	// the tightest bound on what the next hour may spend.
	MinuteRemaining int `json:"minute_remaining"`
	HourRemaining   int `json:"hour_remaining"`

	ResetMinuteAt time.Time `json:"reset_minute_at"`
	ResetHourAt   time.Time `json:"reset_hour_at"`

	// RetryAfter is how long to wait before the oldest in-window entry
	// leaves the window. Only set on deny.
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// acquisition is one successful acquire recorded in a window.
type acquisition struct {
	at     time.Time
	tokens int
}

// window is one rate-limit dimension: a mutex-guarded time-ordered log of
// acquisitions plus an in-flight count for the concurrency cap. Distinct
// dimensions proceed independently.
type window struct {
	mu       sync.Mutex
	entries  []acquisition
	inflight int
	limits   Limits
}

// acquire attempts to record tokensNeeded at now against this window's
// limits. The entry log is time-ordered because entries are only appended
// with the current timestamp under the lock.
func (w *window) acquire(now time.Time, tokensNeeded int) Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Evict everything older than the largest window.
	cutoff := now.Add(-dayWindow)
	firstLive := 0
	for firstLive < len(w.entries) && w.entries[firstLive].at.Before(cutoff) {
		firstLive++
	}
	if firstLive > 0 {
		w.entries = append([]acquisition(nil), w.entries[firstLive:]...)
	}

	var (
		minuteReqs, minuteToks int
		dayReqs, dayToks       int
		oldestInMinute         time.Time
	)
	minuteCutoff := now.Add(-minuteWindow)
	for _, e := range w.entries {
		dayReqs++
		dayToks += e.tokens
		if e.at.After(minuteCutoff) {
			minuteReqs++
			minuteToks += e.tokens
			if oldestInMinute.IsZero() {
				oldestInMinute = e.at
			}
		}
	}

	l := w.limits
	windowDenied := (l.RequestsPerMinute > 0 && minuteReqs+1 > l.RequestsPerMinute) ||
		(l.TokensPerMinute > 0 && minuteToks+tokensNeeded > l.TokensPerMinute) ||
		(l.RequestsPerDay > 0 && dayReqs+1 > l.RequestsPerDay) ||
		(l.TokensPerDay > 0 && dayToks+tokensNeeded > l.TokensPerDay)
	concurrencyDenied := l.Concurrent > 0 && w.inflight >= l.Concurrent
	denied := windowDenied || concurrencyDenied

	res := Result{
		Allowed:       !denied,
		ResetMinuteAt: now.Add(minuteWindow),
		ResetHourAt:   now.Add(hourWindow),
	}
	if !oldestInMinute.IsZero() {
		res.ResetMinuteAt = oldestInMinute.Add(minuteWindow)
	}

	switch {
	case windowDenied:
		if !oldestInMinute.IsZero() {
			retry := oldestInMinute.Add(minuteWindow).Sub(now)
			if retry < 0 {
				retry = 0
			}
			res.RetryAfter = retry
		} else {
			// Denied without in-window history (single request over a cap):
			// the minute window itself is the soonest anything changes.
			res.RetryAfter = minuteWindow
		}
	case concurrencyDenied:
		// A slot frees when a stream ends, not when the window rolls.
		res.RetryAfter = time.Second
	default:
		w.entries = append(w.entries, acquisition{at: now, tokens: tokensNeeded})
		w.inflight++
		minuteToks += tokensNeeded
		dayToks += tokensNeeded
	}

	res.MinuteRemaining = remaining(l.TokensPerMinute, minuteToks)
	res.HourRemaining = remaining(l.TokensPerDay, dayToks)
	return res
}

// release frees the in-flight slot taken by a successful acquire.
func (w *window) release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight > 0 {
		w.inflight--
	}
}

func remaining(limit, used int) int {
	if limit <= 0 {
		return -1 // unlimited
	}
	r := limit - used
	if r < 0 {
		r = 0
	}
	return r
}

// Manager is the process-wide rate limiter. It tracks one window per client
// and one per (provider, model). The maps are guarded by their own mutex;
// each window serializes independently.
type Manager struct {
	mu       sync.Mutex
	clients  map[string]*window
	upstream map[string]*window

	clientLimits Limits
	profiles     map[models.ProviderType]Profile
	tiers        map[models.ProviderType]Tier

	now func() time.Time
}

// NewManager creates a limiter with per-client limits, provider profiles,
// and the active tier per provider.
func NewManager(clientLimits Limits, profiles map[models.ProviderType]Profile, tiers map[models.ProviderType]Tier) *Manager {
	return &Manager{
		clients:      make(map[string]*window),
		upstream:     make(map[string]*window),
		clientLimits: clientLimits,
		profiles:     profiles,
		tiers:        tiers,
		now:          time.Now,
	}
}

// Acquire attempts to reserve tokensNeeded for one request by clientID.
// A successful acquire holds an in-flight slot until Release.
func (m *Manager) Acquire(clientID string, tokensNeeded int) Result {
	w := m.clientWindow(clientID)
	return w.acquire(m.now(), tokensNeeded)
}

// Release frees the in-flight slot held by clientID's last allowed acquire.
func (m *Manager) Release(clientID string) {
	m.mu.Lock()
	w, ok := m.clients[clientID]
	m.mu.Unlock()
	if ok {
		w.release()
	}
}

// AcquireUpstream attempts to reserve tokensNeeded against the
// (provider, model) dimension, resolving limits from the provider's profile
// and active tier. Unknown providers or tiers fail explicitly.
func (m *Manager) AcquireUpstream(provider models.ProviderType, model string, tokensNeeded int) (Result, error) {
	profile, ok := m.profiles[provider]
	if !ok {
		return Result{}, fmt.Errorf("no rate-limit profile for provider %s", provider)
	}
	tier, ok := m.tiers[provider]
	if !ok {
		return Result{}, fmt.Errorf("%w: no tier configured for provider %s", ErrUnknownTier, provider)
	}
	limits, err := profile.LimitsForModel(tier, model)
	if err != nil {
		return Result{}, err
	}

	key := string(provider) + ":" + model
	w := m.upstreamWindow(key, limits)
	return w.acquire(m.now(), tokensNeeded), nil
}

// ReleaseUpstream frees the in-flight slot held against (provider, model).
func (m *Manager) ReleaseUpstream(provider models.ProviderType, model string) {
	key := string(provider) + ":" + model
	m.mu.Lock()
	w, ok := m.upstream[key]
	m.mu.Unlock()
	if ok {
		w.release()
	}
}

func (m *Manager) clientWindow(clientID string) *window {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.clients[clientID]
	if !ok {
		w = &window{limits: m.clientLimits}
		m.clients[clientID] = w
	}
	return w
}

func (m *Manager) upstreamWindow(key string, limits Limits) *window {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.upstream[key]
	if !ok {
		w = &window{limits: limits}
		m.upstream[key] = w
	}
	return w
}
