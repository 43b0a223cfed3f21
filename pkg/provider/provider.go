// Package provider defines the uniform streaming façade over upstream
// analysis backends. Adapters translate their native wire formats into the
// closed Event set; callers never see per-backend types.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/pricing"
)

// ErrNoProvider is returned when neither the hint nor the default resolves
// to a registered provider.
var ErrNoProvider = errors.New("no provider available")

// StreamRequest is one upstream round trip for a single chunk.
type StreamRequest struct {
	Model           string
	System          string
	Prompt          string
	MaxOutputTokens int
}

// Event is the interface for all streaming event types.
type Event interface {
	eventType() EventType
}

// EventType identifies the kind of streaming event.
type EventType string

const (
	EventTypeStart EventType = "start"
	EventTypeDelta EventType = "delta"
	EventTypeUsage EventType = "usage"
	EventTypeEnd   EventType = "end"
	EventTypeError EventType = "error"
)

// StartEvent opens a stream. InputTokens is the upstream's own count when
// it reports one, zero otherwise.
type StartEvent struct{ InputTokens int }

// DeltaEvent carries one text fragment of the analysis.
type DeltaEvent struct{ Text string }

// UsageEvent reports billable token consumption for this round trip.
type UsageEvent struct{ InputTokens, OutputTokens int }

// EndEvent closes a stream normally.
type EndEvent struct{}

// ErrorEvent terminates a stream abnormally. Retryable marks transient
// upstream failures.
type ErrorEvent struct {
	Message   string
	Retryable bool
}

func (e *StartEvent) eventType() EventType { return EventTypeStart }
func (e *DeltaEvent) eventType() EventType { return EventTypeDelta }
func (e *UsageEvent) eventType() EventType { return EventTypeUsage }
func (e *EndEvent) eventType() EventType   { return EventTypeEnd }
func (e *ErrorEvent) eventType() EventType { return EventTypeError }

// Provider is one upstream streaming backend.
type Provider interface {
	// Name returns the provider tag.
	Name() models.ProviderType

	// Models returns the provider's pricing catalog.
	Models() pricing.Catalog

	// ModelForMode maps an analysis mode onto the provider's default
	// model for it.
	ModelForMode(mode models.AnalysisMode) (string, error)

	// Stream opens one upstream call and returns its event sequence.
	// The channel is closed when the stream ends; failures arrive as a
	// terminal ErrorEvent. Cancelling ctx tears the stream down.
	Stream(ctx context.Context, req StreamRequest) (<-chan Event, error)

	// Close releases any held connections.
	Close() error
}

// Registry holds the providers registered at startup, keyed by tag.
type Registry struct {
	mu        sync.RWMutex
	providers map[models.ProviderType]Provider
	fallbacks map[models.ProviderType]models.ProviderType
	def       models.ProviderType
}

func NewRegistry(defaultProvider models.ProviderType) *Registry {
	return &Registry{
		providers: make(map[models.ProviderType]Provider),
		fallbacks: make(map[models.ProviderType]models.ProviderType),
		def:       defaultProvider,
	}
}

// SetFallback records the provider to try when tag itself is not
// registered. Fallbacks chain; Resolve never visits a tag twice.
func (r *Registry) SetFallback(tag, fallback models.ProviderType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks[tag] = fallback
}

// Register adds a provider under its own tag. Later registrations under
// the same tag replace earlier ones.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get returns the provider registered under tag.
func (r *Registry) Get(tag models.ProviderType) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[tag]
	return p, ok
}

// Resolve picks the provider for a request: the hint when registered,
// else the hint's configured fallback chain, else the default and its
// chain. An unavailable hint never fails the request on its own; only an
// exhausted chain does, with ErrNoProvider.
func (r *Registry) Resolve(hint string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tried := make(map[models.ProviderType]bool)
	for _, start := range []models.ProviderType{models.ProviderType(hint), r.def} {
		for tag := start; tag != "" && !tried[tag]; tag = r.fallbacks[tag] {
			tried[tag] = true
			if p, ok := r.providers[tag]; ok {
				return p, nil
			}
		}
	}
	if hint != "" {
		return nil, fmt.Errorf("%w: neither hint %q, default %q, nor their fallbacks registered", ErrNoProvider, hint, r.def)
	}
	return nil, fmt.Errorf("%w: default %q not registered", ErrNoProvider, r.def)
}

// CloseAll closes every registered provider, keeping the first error.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var first error
	for _, p := range r.providers {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
