package models

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel validation errors for analysis requests.
var (
	// ErrInvalidKind indicates the log kind is not ANR or tombstone.
	ErrInvalidKind = errors.New("invalid log kind")

	// ErrInvalidMode indicates the analysis mode is not recognized.
	ErrInvalidMode = errors.New("invalid analysis mode")

	// ErrEmptyContent indicates the request carries no log content.
	ErrEmptyContent = errors.New("empty content")

	// ErrFileTooLarge indicates the content exceeds the configured size cap.
	ErrFileTooLarge = errors.New("file too large")
)

// AnalysisRequest describes one crash artifact to analyze. Immutable once
// submitted; the queue and dispatch layers never mutate it.
type AnalysisRequest struct {
	// Content is the raw log bytes.
	Content []byte `json:"-"`

	// Kind is the artifact kind (anr or tombstone).
	Kind LogKind `json:"kind"`

	// Mode selects thoroughness vs. cost.
	Mode AnalysisMode `json:"mode"`

	// ProviderHint optionally names the preferred provider. Empty means
	// "use the configured default".
	ProviderHint string `json:"provider_hint,omitempty"`

	// UseCache enables content-addressed result caching for this request.
	UseCache bool `json:"use_cache"`

	// Priority orders queued requests; lower values run first.
	Priority int `json:"priority"`

	// ClientID identifies the caller for rate limiting and budget checks.
	ClientID string `json:"client_id"`
}

// Validate checks the request against the given size cap. It returns the
// first structural problem found; content-size problems wrap ErrFileTooLarge.
func (r *AnalysisRequest) Validate(maxBytes int64) error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, r.Kind)
	}
	if !r.Mode.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, r.Mode)
	}
	if len(r.Content) == 0 {
		return ErrEmptyContent
	}
	if maxBytes > 0 && int64(len(r.Content)) > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit %d", ErrFileTooLarge, len(r.Content), maxBytes)
	}
	return nil
}

// ProgressState tracks chunk and token progress for one dispatch.
// current_chunk never exceeds total_chunks.
type ProgressState struct {
	CurrentChunk         int       `json:"current_chunk"`
	TotalChunks          int       `json:"total_chunks"`
	ProcessedTokens      int       `json:"processed_tokens"`
	EstimatedTotalTokens int       `json:"estimated_total_tokens"`
	StartedAt            time.Time `json:"started_at"`
}

// Percent returns completion as a percentage, 0 when total is unknown.
func (p ProgressState) Percent() float64 {
	if p.TotalChunks <= 0 {
		return 0
	}
	return float64(p.CurrentChunk) / float64(p.TotalChunks) * 100
}

// EstimatedRemaining extrapolates remaining wall time from elapsed progress.
// Zero when no chunk has completed yet.
func (p ProgressState) EstimatedRemaining(now time.Time) time.Duration {
	if p.CurrentChunk <= 0 || p.TotalChunks <= 0 {
		return 0
	}
	elapsed := now.Sub(p.StartedAt)
	if elapsed < 0 {
		return 0
	}
	remaining := float64(elapsed) * float64(p.TotalChunks-p.CurrentChunk) / float64(p.CurrentChunk)
	return time.Duration(remaining)
}

// UsageCounters accumulates request/token/cost totals for one dispatch.
// All fields are monotonically non-decreasing for the dispatch lifetime.
type UsageCounters struct {
	Requests      int     `json:"requests"`
	InputTokens   int     `json:"input_tokens"`
	OutputTokens  int     `json:"output_tokens"`
	CostUSD       float64 `json:"cost_usd"`
	Errors        int     `json:"errors"`
	Cancellations int     `json:"cancellations"`
}

// Estimate is one cost-comparison row produced by the cost calculator.
type Estimate struct {
	Provider       ProviderType `json:"provider"`
	Model          string       `json:"model"`
	InputTokens    int          `json:"input_tokens"`
	OutputTokens   int          `json:"output_tokens"`
	CostUSD        float64      `json:"cost_usd"`
	EstTimeMinutes float64      `json:"est_time_minutes"`
	ChunksNeeded   int          `json:"chunks_needed"`
	WithinBudget   bool         `json:"within_budget"`
	Warnings       []string     `json:"warnings,omitempty"`
}
