package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cache"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider/providertest"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/ratelimit"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEngine(t *testing.T, fake provider.Provider, cfg Config, clientLimits ratelimit.Limits) *Engine {
	t.Helper()
	if cfg.MaxFileSizeBytes == 0 {
		cfg.MaxFileSizeBytes = 10 << 20
	}
	if cfg.MaxRateLimitWait == 0 {
		cfg.MaxRateLimitWait = 5 * time.Second
	}

	reg := provider.NewRegistry(models.ProviderAnthropic)
	reg.Register(fake)

	c, err := cache.New(cache.Config{Dir: t.TempDir()}, testLogger())
	require.NoError(t, err)

	limiter := ratelimit.NewManager(clientLimits, ratelimit.DefaultProfiles(), map[models.ProviderType]ratelimit.Tier{
		models.ProviderAnthropic: ratelimit.TierScale,
		models.ProviderOpenAI:    ratelimit.TierScale,
		models.ProviderLocal:     ratelimit.TierScale,
	})

	return NewEngine(cfg, reg, c, limiter, cancel.NewManager(), NopAuditor{}, testLogger())
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("event stream did not finish")
		}
	}
}

func concatContent(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		if c, ok := ev.(*ContentEvent); ok {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

func okScript(text string) []provider.Event {
	return []provider.Event{
		&provider.StartEvent{},
		&provider.DeltaEvent{Text: text},
		&provider.UsageEvent{InputTokens: 1000, OutputTokens: 400},
		&provider.EndEvent{},
	}
}

func quickRequest(content string) models.AnalysisRequest {
	return models.AnalysisRequest{
		Content:  []byte(content),
		Kind:     models.LogKindANR,
		Mode:     models.ModeQuick,
		UseCache: true,
		ClientID: "client-1",
	}
}

func TestAnalyze_EventOrderAndTermination(t *testing.T) {
	e := newTestEngine(t, providertest.NewFake(okScript("RESULT")...), Config{}, ratelimit.Limits{})

	events := collect(t, e.Analyze(context.Background(), quickRequest("foo"), nil))

	require.NotEmpty(t, events)
	assert.IsType(t, &StartEvent{}, events[0], "Start is first")
	terminal := 0
	for _, ev := range events {
		if Terminal(ev) {
			terminal++
		}
	}
	assert.Equal(t, 1, terminal, "exactly one terminal event")
	assert.True(t, Terminal(events[len(events)-1]), "terminal event is last")
}

func TestAnalyze_CacheHitSkipsProvider(t *testing.T) {
	fake := providertest.NewFake(okScript("RESULT")...)
	e := newTestEngine(t, fake, Config{}, ratelimit.Limits{})
	req := quickRequest("foo")

	first := collect(t, e.Analyze(context.Background(), req, nil))
	require.IsType(t, &CompleteEvent{}, first[len(first)-1])
	assert.Equal(t, 1, fake.Calls())

	second := collect(t, e.Analyze(context.Background(), req, nil))
	last := second[len(second)-1]
	require.IsType(t, &CompleteEvent{}, last)
	assert.True(t, last.(*CompleteEvent).Cached)
	assert.Equal(t, 1, fake.Calls(), "second call never reaches upstream")

	assert.Equal(t, concatContent(first), concatContent(second), "byte-identical output")
}

func TestAnalyze_CancellationMidStream(t *testing.T) {
	fake := providertest.NewFake(
		&provider.StartEvent{},
		&provider.DeltaEvent{Text: "A"},
		&provider.DeltaEvent{Text: "B"},
		&provider.DeltaEvent{Text: "C"},
		&provider.DeltaEvent{Text: "D"},
		&provider.EndEvent{},
	)
	fake.Gap = 50 * time.Millisecond
	e := newTestEngine(t, fake, Config{}, ratelimit.Limits{})

	cancels := cancel.NewManager()
	token := cancels.NewToken("cancel-test")
	events := e.Analyze(context.Background(), quickRequest("foo"), token)

	var got []Event
	for ev := range events {
		got = append(got, ev)
		if c, ok := ev.(*ContentEvent); ok && c.Text == "B" {
			token.Cancel("user")
		}
	}

	last := got[len(got)-1]
	require.IsType(t, &CancelledEvent{}, last)
	assert.Equal(t, "user", last.(*CancelledEvent).Reason)
	assert.NotContains(t, concatContent(got), "D")
}

func TestAnalyze_ChunkedANRSeparators(t *testing.T) {
	var trace strings.Builder
	trace.WriteString("----- pid 1 at 2025-01-15 10:00:00 -----\nCmd line: com.example.app\n\n")
	for i := 1; i <= 120; i++ {
		fmt.Fprintf(&trace, "\"t-%d\" prio=5 tid=%d Waiting\n  at java.lang.Object.wait\n\n", i, i)
	}

	fake := providertest.NewFake(okScript("OUT")...)
	e := newTestEngine(t, fake, Config{}, ratelimit.Limits{})

	req := quickRequest(trace.String())
	req.Mode = models.ModeIntelligent
	req.UseCache = false
	events := collect(t, e.Analyze(context.Background(), req, nil))

	require.IsType(t, &CompleteEvent{}, events[len(events)-1])
	assert.Equal(t, 3, fake.Calls(), "120 threads at 50 per chunk")
	assert.Equal(t, 2, strings.Count(concatContent(events), chunkSeparator))
	assert.Equal(t, "OUT"+chunkSeparator+"OUT"+chunkSeparator+"OUT", concatContent(events))
}

func TestAnalyze_RateLimitDeny(t *testing.T) {
	fake := providertest.NewFake(okScript("RESULT")...)
	e := newTestEngine(t, fake, Config{MaxRateLimitWait: time.Millisecond}, ratelimit.Limits{RequestsPerMinute: 1})

	req := quickRequest("foo")
	req.UseCache = false

	first := collect(t, e.Analyze(context.Background(), req, nil))
	require.IsType(t, &CompleteEvent{}, first[len(first)-1])

	second := collect(t, e.Analyze(context.Background(), req, nil))
	last := second[len(second)-1]
	require.IsType(t, &ErrorEvent{}, last)
	errEv := last.(*ErrorEvent)
	assert.Equal(t, KindRateLimited, errEv.Kind)
	assert.Greater(t, errEv.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, errEv.RetryAfter, time.Minute)
}

func TestAnalyze_ReleasesConcurrencySlotBetweenChunks(t *testing.T) {
	var trace strings.Builder
	trace.WriteString("----- pid 1 at 2025-01-15 10:00:00 -----\nCmd line: com.example.app\n\n")
	for i := 1; i <= 120; i++ {
		fmt.Fprintf(&trace, "\"t-%d\" prio=5 tid=%d Waiting\n  at java.lang.Object.wait\n\n", i, i)
	}

	fake := providertest.NewFake(okScript("OUT")...)
	// A single concurrent slot and no wait budget: the dispatch only
	// survives all three chunks if each stream hands its slot back.
	e := newTestEngine(t, fake, Config{MaxRateLimitWait: time.Millisecond}, ratelimit.Limits{Concurrent: 1})

	req := quickRequest(trace.String())
	req.Mode = models.ModeIntelligent
	req.UseCache = false
	events := collect(t, e.Analyze(context.Background(), req, nil))

	require.IsType(t, &CompleteEvent{}, events[len(events)-1])
	assert.Equal(t, 3, fake.Calls())
}

func TestAnalyze_MonotoneProgress(t *testing.T) {
	fake := providertest.NewFake(okScript("chunk output")...)
	e := newTestEngine(t, fake, Config{}, ratelimit.Limits{})

	req := quickRequest(strings.Repeat("line of generic log output\n", 2000))
	req.UseCache = false
	events := collect(t, e.Analyze(context.Background(), req, nil))

	prev := -1.0
	seen := 0
	for _, ev := range events {
		if p, ok := ev.(*ProgressEvent); ok {
			seen++
			assert.GreaterOrEqual(t, p.Percent, prev)
			prev = p.Percent
		}
	}
	require.Greater(t, seen, 0)
	assert.InDelta(t, 100.0, prev, 1e-9, "last progress reaches 100%")
}

func TestAnalyze_InvalidKind(t *testing.T) {
	e := newTestEngine(t, providertest.NewFake(okScript("x")...), Config{}, ratelimit.Limits{})

	req := quickRequest("foo")
	req.Kind = models.LogKind("syslog")
	events := collect(t, e.Analyze(context.Background(), req, nil))

	last := events[len(events)-1]
	require.IsType(t, &ErrorEvent{}, last)
	assert.Equal(t, KindInvalidKind, last.(*ErrorEvent).Kind)
}

func TestAnalyze_FileTooLarge(t *testing.T) {
	e := newTestEngine(t, providertest.NewFake(okScript("x")...), Config{MaxFileSizeBytes: 8}, ratelimit.Limits{})

	events := collect(t, e.Analyze(context.Background(), quickRequest("far too large for the cap"), nil))

	last := events[len(events)-1]
	require.IsType(t, &ErrorEvent{}, last)
	assert.Equal(t, KindFileTooLarge, last.(*ErrorEvent).Kind)
}

func TestAnalyze_NoProvider(t *testing.T) {
	// The registry default is anthropic, but only the local sidecar is
	// registered and nothing falls back to it.
	e := newTestEngine(t, &providertest.Fake{Tag: models.ProviderLocal}, Config{}, ratelimit.Limits{})

	events := collect(t, e.Analyze(context.Background(), quickRequest("foo"), nil))

	last := events[len(events)-1]
	require.IsType(t, &ErrorEvent{}, last)
	assert.Equal(t, KindNoProvider, last.(*ErrorEvent).Kind)
}

func TestAnalyze_UnavailableHintUsesDefault(t *testing.T) {
	fake := providertest.NewFake(okScript("from default")...)
	e := newTestEngine(t, fake, Config{}, ratelimit.Limits{})

	req := quickRequest("foo")
	req.ProviderHint = "openai"
	events := collect(t, e.Analyze(context.Background(), req, nil))

	last := events[len(events)-1]
	require.IsType(t, &CompleteEvent{}, last)
	assert.Equal(t, "from default", concatContent(events))
	assert.Equal(t, 1, fake.Calls())
}

func TestAnalyze_BudgetExceeded(t *testing.T) {
	fake := providertest.NewFake(okScript("x")...)
	e := newTestEngine(t, fake, Config{BudgetUSD: 0.000001}, ratelimit.Limits{})

	req := quickRequest(strings.Repeat("x", 100_000))
	events := collect(t, e.Analyze(context.Background(), req, nil))

	last := events[len(events)-1]
	require.IsType(t, &ErrorEvent{}, last)
	assert.Equal(t, KindBudgetExceeded, last.(*ErrorEvent).Kind)
	assert.Equal(t, 0, fake.Calls(), "pre-flight check never reaches upstream")
}

func TestAnalyze_TimeoutCancels(t *testing.T) {
	fake := providertest.NewFake(
		&provider.StartEvent{},
		&provider.DeltaEvent{Text: "A"},
		&provider.DeltaEvent{Text: "B"},
		&provider.DeltaEvent{Text: "C"},
		&provider.EndEvent{},
	)
	fake.Gap = 100 * time.Millisecond
	e := newTestEngine(t, fake, Config{RequestTimeout: 120 * time.Millisecond}, ratelimit.Limits{})

	events := collect(t, e.Analyze(context.Background(), quickRequest("foo"), nil))

	last := events[len(events)-1]
	require.IsType(t, &CancelledEvent{}, last)
	assert.Equal(t, ReasonTimeout, last.(*CancelledEvent).Reason)
}

func TestAnalyze_TransientRetriesOnce(t *testing.T) {
	fake := &providertest.Fake{
		Tag: models.ProviderAnthropic,
		Scripts: [][]provider.Event{
			{&provider.ErrorEvent{Message: "overloaded", Retryable: true}},
			okScript("RESULT"),
		},
	}
	e := newTestEngine(t, fake, Config{}, ratelimit.Limits{})

	req := quickRequest("foo")
	req.UseCache = false
	events := collect(t, e.Analyze(context.Background(), req, nil))

	last := events[len(events)-1]
	require.IsType(t, &CompleteEvent{}, last)
	assert.Equal(t, 2, fake.Calls())
	assert.Equal(t, "RESULT", concatContent(events))
}

func TestAnalyze_FatalProviderErrorNoRetry(t *testing.T) {
	fake := providertest.NewFake(&provider.ErrorEvent{Message: "invalid api key", Retryable: false})
	e := newTestEngine(t, fake, Config{}, ratelimit.Limits{})

	req := quickRequest("foo")
	req.UseCache = false
	events := collect(t, e.Analyze(context.Background(), req, nil))

	last := events[len(events)-1]
	require.IsType(t, &ErrorEvent{}, last)
	assert.Equal(t, KindProviderFatal, last.(*ErrorEvent).Kind)
	assert.Equal(t, 1, fake.Calls())
}

func TestAnalyze_UsageTotalsInComplete(t *testing.T) {
	fake := providertest.NewFake(okScript("RESULT")...)
	e := newTestEngine(t, fake, Config{}, ratelimit.Limits{})

	req := quickRequest("foo")
	req.UseCache = false
	events := collect(t, e.Analyze(context.Background(), req, nil))

	last := events[len(events)-1]
	require.IsType(t, &CompleteEvent{}, last)
	done := last.(*CompleteEvent)
	assert.Equal(t, 1000, done.TokensIn)
	assert.Equal(t, 400, done.TokensOut)
	// claude-haiku-3-5: 1000/1000*0.0008 + 400/1000*0.004
	assert.InDelta(t, 0.0024, done.CostUSD, 1e-9)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindInvalidKind, Classify(models.ErrInvalidKind))
	assert.Equal(t, KindInvalidMode, Classify(models.ErrInvalidMode))
	assert.Equal(t, KindFileTooLarge, Classify(models.ErrFileTooLarge))
	assert.Equal(t, KindNoProvider, Classify(provider.ErrNoProvider))
	assert.Equal(t, KindBudgetExceeded, Classify(ErrBudgetExceeded))
	assert.Equal(t, KindRateLimited, Classify(&RateLimitedError{RetryAfter: time.Second}))
	assert.Equal(t, KindCancelled, Classify(&cancel.CancelledError{TokenID: "t", Reason: "user"}))
	assert.Equal(t, KindProviderTransient, Classify(&transientError{err: errors.New("overloaded")}))
	assert.Equal(t, KindProviderFatal, Classify(errors.New("anything else")))
}
