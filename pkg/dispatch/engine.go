// Package dispatch ties provider resolution, caching, chunking, rate
// limiting, cancellation, and audit into a single streaming analysis call.
package dispatch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cache"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/chunker"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/pricing"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/ratelimit"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/status"
)

// ReasonTimeout is the cancellation reason recorded when a dispatch
// exceeds its wall-clock deadline.
const ReasonTimeout = "timeout"

// chunkSeparator is emitted between per-chunk outputs and persisted in the
// cached result, so a cache hit replays byte-identical content.
const chunkSeparator = "\n\n---\n\n"

// retryBackoff is the pause before the single transient-error retry.
const retryBackoff = 250 * time.Millisecond

// Auditor persists one record per analysis attempt. The initial Begin
// failure aborts the dispatch; Finalize failures are logged only.
type Auditor interface {
	Begin(ctx context.Context, rec AuditRecord) error
	Finalize(ctx context.Context, analysisID, status string, tokensIn, tokensOut int, costUSD float64, errText string) error
}

// AuditRecord is the write-once creation payload for one analysis attempt.
type AuditRecord struct {
	AnalysisID  string
	Kind        models.LogKind
	Mode        models.AnalysisMode
	Provider    models.ProviderType
	Model       string
	ContentHash string
	ContentSize int
}

// Audit terminal statuses.
const (
	AuditStatusCompleted = "completed"
	AuditStatusFailed    = "failed"
	AuditStatusCancelled = "cancelled"
)

// NopAuditor discards audit writes. Used when persistence is disabled.
type NopAuditor struct{}

func (NopAuditor) Begin(context.Context, AuditRecord) error { return nil }
func (NopAuditor) Finalize(context.Context, string, string, int, int, float64, string) error {
	return nil
}

// Config carries the engine's behavioral knobs.
type Config struct {
	MaxFileSizeBytes int64
	RequestTimeout   time.Duration

	// MaxRateLimitWait caps the total time one dispatch spends waiting
	// on denied rate-limit permits before failing.
	MaxRateLimitWait time.Duration

	// BudgetUSD fails a dispatch pre-flight when the cost estimate
	// exceeds it. Zero disables the check.
	BudgetUSD float64
}

// Engine is the single entry point for streaming analyses.
type Engine struct {
	cfg      Config
	registry *provider.Registry
	cache    *cache.Cache
	limiter  *ratelimit.Manager
	cancels  *cancel.Manager
	audit    Auditor
	logger   *slog.Logger

	statuses sync.Map // analysis id -> *status.Manager
}

// NewEngine wires the engine. cache may be nil when caching is disabled.
func NewEngine(cfg Config, registry *provider.Registry, c *cache.Cache, limiter *ratelimit.Manager, cancels *cancel.Manager, audit Auditor, logger *slog.Logger) *Engine {
	if audit == nil {
		audit = NopAuditor{}
	}
	return &Engine{
		cfg:      cfg,
		registry: registry,
		cache:    c,
		limiter:  limiter,
		cancels:  cancels,
		audit:    audit,
		logger:   logger.With("component", "dispatch"),
	}
}

// Status returns the live status manager for an in-flight analysis.
func (e *Engine) Status(analysisID string) (*status.Manager, bool) {
	v, ok := e.statuses.Load(analysisID)
	if !ok {
		return nil, false
	}
	return v.(*status.Manager), true
}

// Analyze runs one analysis and streams its events. The returned channel
// delivers Start first, then content and progress, and closes after
// exactly one terminal event. A nil token gets a fresh one.
func (e *Engine) Analyze(ctx context.Context, req models.AnalysisRequest, token *cancel.Token) <-chan Event {
	out := make(chan Event, 64)
	go e.run(ctx, req, token, out)
	return out
}

// dispatchState accumulates per-dispatch totals.
type dispatchState struct {
	buffer    strings.Builder
	tokensIn  int
	tokensOut int
	costUSD   float64
	processed int
	estimated int
	cached    bool
	audited   bool
}

func (e *Engine) run(callerCtx context.Context, req models.AnalysisRequest, token *cancel.Token, out chan<- Event) {
	defer close(out)

	if token == nil {
		token = e.cancels.NewToken(uuid.NewString())
		defer e.cancels.Remove(token.ID())
	}
	analysisID := token.ID()
	log := e.logger.With("analysis_id", analysisID)

	sm := status.NewManager()
	e.statuses.Store(analysisID, sm)
	defer e.statuses.Delete(analysisID)

	// streamCtx tears down provider I/O and waits when the token fires;
	// terminal event delivery stays on the caller's context.
	streamCtx, cancelStream := context.WithCancel(callerCtx)
	defer cancelStream()
	token.AddCallback(func(string) { cancelStream() })

	emit := func(ev Event) bool {
		select {
		case out <- ev:
			return true
		case <-callerCtx.Done():
			return false
		}
	}

	if !emit(&StartEvent{AnalysisID: analysisID}) {
		return
	}

	st := &dispatchState{}
	err := e.process(streamCtx, req, token, sm, st, emit, log)

	switch {
	case err == nil:
		sm.SetPhase(status.PhaseCompleted)
		e.finalize(analysisID, AuditStatusCompleted, st, "", log)
		log.Info("analysis completed",
			"tokens_in", st.tokensIn, "tokens_out", st.tokensOut,
			"cost_usd", st.costUSD, "cached", st.cached)
		emit(&CompleteEvent{
			TokensIn:  st.tokensIn,
			TokensOut: st.tokensOut,
			CostUSD:   st.costUSD,
			Cached:    st.cached,
		})
	case errors.Is(err, cancel.ErrCancelled):
		reason := token.Reason()
		sm.RecordCancellation(reason)
		e.finalize(analysisID, AuditStatusCancelled, st, reason, log)
		log.Info("analysis cancelled", "reason", reason)
		emit(&CancelledEvent{Reason: reason})
	default:
		kind := Classify(err)
		sm.RecordError(err.Error())
		e.finalize(analysisID, AuditStatusFailed, st, err.Error(), log)
		log.Error("analysis failed", "kind", kind, "error", err)
		ev := &ErrorEvent{Kind: kind, Text: err.Error()}
		var rle *RateLimitedError
		if errors.As(err, &rle) {
			ev.RetryAfter = rle.RetryAfter
		}
		emit(ev)
	}
}

// finalize updates the audit record; failures here never abort a dispatch.
func (e *Engine) finalize(analysisID, auditStatus string, st *dispatchState, errText string, log *slog.Logger) {
	if !st.audited {
		return
	}
	ctx, cancelFn := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFn()
	if err := e.audit.Finalize(ctx, analysisID, auditStatus, st.tokensIn, st.tokensOut, st.costUSD, errText); err != nil {
		log.Warn("audit finalize failed", "error", err)
	}
}

func (e *Engine) process(ctx context.Context, req models.AnalysisRequest, token *cancel.Token, sm *status.Manager, st *dispatchState, emit func(Event) bool, log *slog.Logger) error {
	if err := req.Validate(e.cfg.MaxFileSizeBytes); err != nil {
		return err
	}

	prov, err := e.registry.Resolve(req.ProviderHint)
	if err != nil {
		return err
	}
	model, err := prov.ModelForMode(req.Mode)
	if err != nil {
		return err
	}
	price, err := pricing.Lookup(prov.Name(), model)
	if err != nil {
		return err
	}
	log = log.With("provider", prov.Name(), "model", model)

	// A cached result short-circuits everything, including the hint
	// policy: whoever produced the entry for this (content, mode, model)
	// wins.
	key := cache.Key(req.Content, req.Mode, model)
	if req.UseCache && e.cache != nil {
		if value, ok := e.cache.Get(key); ok {
			log.Info("cache hit", "key", key)
			sm.SetPhase(status.PhaseCompleted)
			st.cached = true
			if !emit(&ContentEvent{Text: string(value)}) {
				return context.Canceled
			}
			return nil
		}
	}

	if e.cfg.BudgetUSD > 0 {
		estIn, estOut := pricing.EstimateTokens(len(req.Content), prov.Name(), req.Mode)
		if est := pricing.Cost(price, estIn, estOut); est > e.cfg.BudgetUSD {
			return fmt.Errorf("%w: estimated $%.4f exceeds budget $%.2f",
				ErrBudgetExceeded, est, e.cfg.BudgetUSD)
		}
	}

	sum := sha256.Sum256(req.Content)
	if err := e.audit.Begin(context.WithoutCancel(ctx), AuditRecord{
		AnalysisID:  token.ID(),
		Kind:        req.Kind,
		Mode:        req.Mode,
		Provider:    prov.Name(),
		Model:       model,
		ContentHash: hex.EncodeToString(sum[:]),
		ContentSize: len(req.Content),
	}); err != nil {
		return fmt.Errorf("creating audit record: %w", err)
	}
	st.audited = true

	if e.cfg.RequestTimeout > 0 {
		timer := time.AfterFunc(e.cfg.RequestTimeout, func() {
			token.Cancel(ReasonTimeout)
		})
		defer timer.Stop()
	}

	sm.SetPhase(status.PhaseChunking)
	chunks := chunker.Split(req.Content, req.Kind, req.Mode, prov.Name(), price.ContextWindow)
	estIn, estOut := pricing.EstimateTokens(len(req.Content), prov.Name(), req.Mode)
	st.estimated = estIn + estOut
	sm.UpdateProgress(0, len(chunks), 0, st.estimated)
	log.Info("input chunked", "chunks", len(chunks), "bytes", len(req.Content))

	sm.SetPhase(status.PhaseAnalyzing)
	var waited time.Duration
	for i, c := range chunks {
		if err := token.Check(); err != nil {
			return err
		}

		if i > 0 {
			if !emit(&ContentEvent{Text: chunkSeparator}) {
				return context.Canceled
			}
			st.buffer.WriteString(chunkSeparator)
		}

		if err := e.acquirePermits(ctx, token, req.ClientID, prov.Name(), model, c.EstInputTokens, &waited); err != nil {
			return err
		}
		err := e.streamChunk(ctx, prov, model, price, req, c, token, sm, st, emit)
		e.limiter.ReleaseUpstream(prov.Name(), model)
		e.limiter.Release(req.ClientID)
		if err != nil {
			return err
		}

		percent := float64(i+1) / float64(len(chunks)) * 100
		sm.UpdateProgress(i+1, len(chunks), st.processed, st.estimated)
		if !emit(&ProgressEvent{
			Percent:         percent,
			CurrentChunk:    i + 1,
			TotalChunks:     len(chunks),
			ProcessedTokens: st.processed,
		}) {
			return context.Canceled
		}
	}

	// Detect cancellation that fired after the last chunk drained but
	// before completion.
	if err := token.Check(); err != nil {
		return err
	}

	if req.UseCache && e.cache != nil {
		e.cache.Put(key, []byte(st.buffer.String()), map[string]string{
			"provider": string(prov.Name()),
			"model":    model,
			"mode":     string(req.Mode),
		})
	}
	return nil
}

// streamChunk runs one upstream round trip, retrying once on a transient
// failure if nothing has been emitted for this chunk yet.
func (e *Engine) streamChunk(ctx context.Context, prov provider.Provider, model string, price pricing.ModelPricing, req models.AnalysisRequest, c chunker.Chunk, token *cancel.Token, sm *status.Manager, st *dispatchState, emit func(Event) bool) error {
	maxOut := price.MaxOutputTokens
	if maxOut <= 0 {
		maxOut = 4096
	}
	sreq := provider.StreamRequest{
		Model:           model,
		System:          systemPrompt(req.Kind, req.Mode),
		Prompt:          userPrompt(req.Kind, c),
		MaxOutputTokens: maxOut,
	}

	for attempt := 0; ; attempt++ {
		emitted, err := e.consumeStream(ctx, prov, sreq, price, token, sm, st, emit)
		if err == nil {
			return nil
		}

		var transient *transientError
		retryable := errors.As(err, &transient) && c.Index == 0 && attempt == 0 && !emitted
		if !retryable {
			return err
		}

		sm.RecordMessage(status.LevelWarning, "transient provider error, retrying", map[string]any{
			"error": err.Error(),
		})
		if !emit(&MessageEvent{Level: status.LevelWarning, Text: "transient provider error, retrying"}) {
			return context.Canceled
		}
		timer := time.NewTimer(retryBackoff << attempt)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			if cerr := token.Check(); cerr != nil {
				return cerr
			}
			return ctx.Err()
		}
	}
}

// consumeStream forwards one provider stream into the outbound channel.
// emitted reports whether any content left this chunk before the failure.
func (e *Engine) consumeStream(ctx context.Context, prov provider.Provider, sreq provider.StreamRequest, price pricing.ModelPricing, token *cancel.Token, sm *status.Manager, st *dispatchState, emit func(Event) bool) (emitted bool, err error) {
	events, err := prov.Stream(ctx, sreq)
	if err != nil {
		return false, &transientError{err: err}
	}

	charsPerToken := prov.Name().CharsPerToken()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return emitted, nil
			}
			if err := token.Check(); err != nil {
				return emitted, err
			}
			switch v := ev.(type) {
			case *provider.StartEvent:
				// Totals come from UsageEvent; Start only seeds the
				// progress estimate when the upstream reports one.
				if v.InputTokens > 0 && st.estimated == 0 {
					st.estimated = v.InputTokens
				}
			case *provider.DeltaEvent:
				emitted = true
				st.buffer.WriteString(v.Text)
				st.processed += int(float64(len(v.Text)) / charsPerToken)
				if !emit(&ContentEvent{Text: v.Text}) {
					return emitted, context.Canceled
				}
			case *provider.UsageEvent:
				st.tokensIn += v.InputTokens
				st.tokensOut += v.OutputTokens
				cost := pricing.Cost(price, v.InputTokens, v.OutputTokens)
				st.costUSD += cost
				sm.RecordUsage(v.InputTokens, v.OutputTokens, cost)
			case *provider.EndEvent:
				return emitted, nil
			case *provider.ErrorEvent:
				perr := errors.New(v.Message)
				if v.Retryable {
					return emitted, &transientError{err: perr}
				}
				return emitted, perr
			}
		case <-ctx.Done():
			if err := token.Check(); err != nil {
				return emitted, err
			}
			return emitted, ctx.Err()
		}
	}
}

// acquirePermits takes the per-client and per-(provider, model) sliding
// window permits for one chunk, sleeping through denials until the
// per-request wait budget runs out. On success both in-flight slots are
// held; the caller releases them when the chunk's stream ends.
func (e *Engine) acquirePermits(ctx context.Context, token *cancel.Token, clientID string, prov models.ProviderType, model string, tokens int, waited *time.Duration) (err error) {
	clientHeld := false
	defer func() {
		if err != nil && clientHeld {
			e.limiter.Release(clientID)
		}
	}()
	for {
		if err := token.Check(); err != nil {
			return err
		}

		var res ratelimit.Result
		if !clientHeld {
			res = e.limiter.Acquire(clientID, tokens)
			if res.Allowed {
				clientHeld = true
				continue
			}
		} else {
			var err error
			res, err = e.limiter.AcquireUpstream(prov, model, tokens)
			if err != nil {
				return err
			}
			if res.Allowed {
				return nil
			}
		}

		wait := res.RetryAfter
		if wait <= 0 {
			wait = time.Second
		}
		if *waited+wait > e.cfg.MaxRateLimitWait {
			return &RateLimitedError{RetryAfter: wait}
		}
		*waited += wait

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			if err := token.Check(); err != nil {
				return err
			}
			return ctx.Err()
		}
	}
}
