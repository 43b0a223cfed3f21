// Package anthropic adapts the Anthropic Messages streaming API to the
// provider event set.
package anthropic

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/pricing"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
)

// MessagesClient is the slice of the SDK this adapter needs. It is
// satisfied by *sdk.MessageService so tests can pass a mock.
type MessagesClient interface {
	NewStreaming(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) *ssestream.Stream[sdk.MessageStreamEventUnion]
}

// Adapter streams crash-log analyses through the Anthropic Messages API.
type Adapter struct {
	msg MessagesClient
}

// New wraps an existing messages client, typically for tests.
func New(msg MessagesClient) *Adapter {
	return &Adapter{msg: msg}
}

// NewWithKey builds an adapter over a real SDK client.
func NewWithKey(apiKey string) (*Adapter, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&client.Messages), nil
}

func (a *Adapter) Name() models.ProviderType { return models.ProviderAnthropic }

func (a *Adapter) Models() pricing.Catalog {
	catalog, _ := pricing.CatalogFor(models.ProviderAnthropic)
	return catalog
}

func (a *Adapter) ModelForMode(mode models.AnalysisMode) (string, error) {
	return pricing.ModelForMode(models.ProviderAnthropic, mode)
}

// Stream opens one Messages round trip and pumps SDK events into the
// uniform event channel. The channel closes when the upstream stream ends.
func (a *Adapter) Stream(ctx context.Context, req provider.StreamRequest) (<-chan provider.Event, error) {
	if req.Model == "" {
		return nil, errors.New("anthropic: model identifier is required")
	}
	if req.MaxOutputTokens <= 0 {
		return nil, errors.New("anthropic: max output tokens must be positive")
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(req.Model),
		MaxTokens: int64(req.MaxOutputTokens),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	stream := a.msg.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("anthropic messages.new stream: %w", err)
	}

	events := make(chan provider.Event, 32)
	go pump(ctx, stream, events)
	return events, nil
}

func (a *Adapter) Close() error { return nil }

func pump(ctx context.Context, stream *ssestream.Stream[sdk.MessageStreamEventUnion], events chan<- provider.Event) {
	defer close(events)
	defer func() { _ = stream.Close() }()

	emit := func(ev provider.Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for stream.Next() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch ev := stream.Current().AsAny().(type) {
		case sdk.MessageStartEvent:
			if !emit(&provider.StartEvent{InputTokens: int(ev.Message.Usage.InputTokens)}) {
				return
			}
		case sdk.ContentBlockDeltaEvent:
			if delta, ok := ev.Delta.AsAny().(sdk.TextDelta); ok && delta.Text != "" {
				if !emit(&provider.DeltaEvent{Text: delta.Text}) {
					return
				}
			}
		case sdk.MessageDeltaEvent:
			if !emit(&provider.UsageEvent{
				InputTokens:  int(ev.Usage.InputTokens),
				OutputTokens: int(ev.Usage.OutputTokens),
			}) {
				return
			}
		case sdk.MessageStopEvent:
			emit(&provider.EndEvent{})
			return
		}
	}

	if err := stream.Err(); err != nil {
		emit(&provider.ErrorEvent{Message: err.Error(), Retryable: isTransient(err)})
		return
	}
	emit(&provider.EndEvent{})
}

// isTransient classifies upstream failures worth one retry: overload,
// rate limiting, and server-side errors.
func isTransient(err error) bool {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
