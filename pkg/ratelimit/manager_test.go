package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

// fakeClock lets tests advance time deterministically.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(limits Limits) (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)}
	m := NewManager(limits, DefaultProfiles(), map[models.ProviderType]Tier{
		models.ProviderAnthropic: Tier1,
		models.ProviderOpenAI:    TierFree,
	})
	m.now = clock.now
	return m, clock
}

func TestAcquire_OneRPMDeniesSecondRequest(t *testing.T) {
	m, clock := newTestManager(Limits{RequestsPerMinute: 1})

	first := m.Acquire("client-x", 100)
	require.True(t, first.Allowed)

	second := m.Acquire("client-x", 100)
	require.False(t, second.Allowed)
	assert.Greater(t, second.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, second.RetryAfter, time.Minute)

	// After the oldest entry leaves the window, the client may proceed.
	clock.advance(61 * time.Second)
	third := m.Acquire("client-x", 100)
	assert.True(t, third.Allowed)
}

func TestAcquire_DenyRecordsNothing(t *testing.T) {
	m, _ := newTestManager(Limits{TokensPerMinute: 1000})

	require.True(t, m.Acquire("c", 900).Allowed)
	require.False(t, m.Acquire("c", 200).Allowed)

	// The denied 200 must not count against the window: 100 still fits.
	assert.True(t, m.Acquire("c", 100).Allowed)
}

func TestAcquire_TokenSumNeverExceedsTPM(t *testing.T) {
	const tpm = 5000
	m, clock := newTestManager(Limits{TokensPerMinute: tpm})

	granted := 0
	for range 100 {
		res := m.Acquire("c", 300)
		if res.Allowed {
			granted += 300
		}
		clock.advance(time.Second)
		// Only count grants inside a single 60s window.
		if clock.t.Sub(time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)) >= time.Minute {
			break
		}
	}
	assert.LessOrEqual(t, granted, tpm)
}

func TestAcquire_DistinctClientsAreIndependent(t *testing.T) {
	m, _ := newTestManager(Limits{RequestsPerMinute: 1})

	assert.True(t, m.Acquire("a", 1).Allowed)
	assert.True(t, m.Acquire("b", 1).Allowed)
	assert.False(t, m.Acquire("a", 1).Allowed)
}

func TestAcquire_DailyCap(t *testing.T) {
	m, clock := newTestManager(Limits{RequestsPerDay: 2})

	require.True(t, m.Acquire("c", 1).Allowed)
	clock.advance(2 * time.Minute)
	require.True(t, m.Acquire("c", 1).Allowed)
	clock.advance(2 * time.Minute)
	assert.False(t, m.Acquire("c", 1).Allowed, "third request in a day is denied")

	clock.advance(25 * time.Hour)
	assert.True(t, m.Acquire("c", 1).Allowed, "window slides past old entries")
}

func TestAcquire_MinuteRemainingReported(t *testing.T) {
	m, _ := newTestManager(Limits{TokensPerMinute: 1000})

	res := m.Acquire("c", 400)
	require.True(t, res.Allowed)
	assert.Equal(t, 600, res.MinuteRemaining)
}

func TestAcquire_ConcurrentCapAndRelease(t *testing.T) {
	m, _ := newTestManager(Limits{Concurrent: 2})

	require.True(t, m.Acquire("c", 1).Allowed)
	require.True(t, m.Acquire("c", 1).Allowed)

	third := m.Acquire("c", 1)
	require.False(t, third.Allowed)
	assert.Equal(t, time.Second, third.RetryAfter, "slot frees on release, not on window roll")

	m.Release("c")
	assert.True(t, m.Acquire("c", 1).Allowed)
}

func TestAcquire_HourRemainingUsesDayCap(t *testing.T) {
	m, clock := newTestManager(Limits{TokensPerDay: 100})

	require.True(t, m.Acquire("c", 30).Allowed)
	clock.advance(2 * time.Hour)

	res := m.Acquire("c", 30)
	require.True(t, res.Allowed)
	assert.Equal(t, 40, res.HourRemaining, "entries older than an hour still consume the day cap")
}

func TestAcquireUpstream_ConcurrentCapAndRelease(t *testing.T) {
	m, _ := newTestManager(Limits{})

	// The openai free tier allows a single concurrent stream.
	first, err := m.AcquireUpstream(models.ProviderOpenAI, "gpt-4o-mini", 10)
	require.NoError(t, err)
	require.True(t, first.Allowed)

	second, err := m.AcquireUpstream(models.ProviderOpenAI, "gpt-4o-mini", 10)
	require.NoError(t, err)
	assert.False(t, second.Allowed)

	m.ReleaseUpstream(models.ProviderOpenAI, "gpt-4o-mini")
	third, err := m.AcquireUpstream(models.ProviderOpenAI, "gpt-4o-mini", 10)
	require.NoError(t, err)
	assert.True(t, third.Allowed)
}

func TestAcquireUpstream_TierResolution(t *testing.T) {
	m, _ := newTestManager(Limits{})

	res, err := m.AcquireUpstream(models.ProviderAnthropic, "claude-sonnet-4-5", 10_000)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// Unknown tier fails explicitly.
	m.tiers[models.ProviderLocal] = Tier("platinum")
	_, err = m.AcquireUpstream(models.ProviderLocal, "analyzer-default", 1)
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestAcquireUpstream_ModelOverrideRaisesTPM(t *testing.T) {
	profile := DefaultProfiles()[models.ProviderAnthropic]

	base, err := profile.LimitsForModel(Tier1, "claude-sonnet-4-5")
	require.NoError(t, err)
	fast, err := profile.LimitsForModel(Tier1, "claude-haiku-3-5")
	require.NoError(t, err)

	assert.Greater(t, fast.TokensPerMinute, base.TokensPerMinute)
	assert.Equal(t, base.RequestsPerMinute, fast.RequestsPerMinute, "override only replaces set fields")
}
