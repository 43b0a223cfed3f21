// Package providertest provides a scripted in-memory provider for tests.
package providertest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/pricing"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
)

// Fake replays a scripted event sequence per Stream call. Scripts are
// consumed in order; the last script repeats once exhausted.
type Fake struct {
	Tag     models.ProviderType
	Scripts [][]provider.Event

	// Gap inserts a pause before each scripted event.
	Gap time.Duration

	// StreamErr, when set, fails Stream before any event is produced.
	StreamErr error

	calls atomic.Int64
}

// NewFake builds a fake anthropic-tagged provider replaying one script.
func NewFake(events ...provider.Event) *Fake {
	return &Fake{
		Tag:     models.ProviderAnthropic,
		Scripts: [][]provider.Event{events},
	}
}

func (f *Fake) Name() models.ProviderType {
	if f.Tag == "" {
		return models.ProviderAnthropic
	}
	return f.Tag
}

func (f *Fake) Models() pricing.Catalog {
	catalog, _ := pricing.CatalogFor(f.Name())
	return catalog
}

func (f *Fake) ModelForMode(mode models.AnalysisMode) (string, error) {
	return pricing.ModelForMode(f.Name(), mode)
}

// Stream replays the next script. Each call increments Calls.
func (f *Fake) Stream(ctx context.Context, _ provider.StreamRequest) (<-chan provider.Event, error) {
	if f.StreamErr != nil {
		f.calls.Add(1)
		return nil, f.StreamErr
	}
	n := int(f.calls.Add(1)) - 1
	if n >= len(f.Scripts) {
		n = len(f.Scripts) - 1
	}
	script := f.Scripts[n]

	events := make(chan provider.Event, len(script))
	go func() {
		defer close(events)
		for _, ev := range script {
			if f.Gap > 0 {
				select {
				case <-time.After(f.Gap):
				case <-ctx.Done():
					return
				}
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

func (f *Fake) Close() error { return nil }

// Calls reports how many times Stream was invoked.
func (f *Fake) Calls() int { return int(f.calls.Load()) }
