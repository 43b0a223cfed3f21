// Package openai adapts the OpenAI Chat Completions streaming API to the
// provider event set.
package openai

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/pricing"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
)

// CompletionsClient is the slice of the SDK this adapter needs. It is
// satisfied by the real chat completion service so tests can pass a mock.
type CompletionsClient interface {
	NewStreaming(ctx context.Context, body sdk.ChatCompletionNewParams, opts ...option.RequestOption) *ssestream.Stream[sdk.ChatCompletionChunk]
}

// Adapter streams crash-log analyses through the Chat Completions API.
type Adapter struct {
	chat CompletionsClient
}

func New(chat CompletionsClient) *Adapter {
	return &Adapter{chat: chat}
}

// NewWithKey builds an adapter over a real SDK client.
func NewWithKey(apiKey string) (*Adapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key is required")
	}
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&client.Chat.Completions), nil
}

func (a *Adapter) Name() models.ProviderType { return models.ProviderOpenAI }

func (a *Adapter) Models() pricing.Catalog {
	catalog, _ := pricing.CatalogFor(models.ProviderOpenAI)
	return catalog
}

func (a *Adapter) ModelForMode(mode models.AnalysisMode) (string, error) {
	return pricing.ModelForMode(models.ProviderOpenAI, mode)
}

// Stream opens one chat completion with usage reporting enabled and pumps
// SDK chunks into the uniform event channel.
func (a *Adapter) Stream(ctx context.Context, req provider.StreamRequest) (<-chan provider.Event, error) {
	if req.Model == "" {
		return nil, errors.New("openai: model identifier is required")
	}

	messages := []sdk.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		messages = append(messages, sdk.SystemMessage(req.System))
	}
	messages = append(messages, sdk.UserMessage(req.Prompt))

	params := sdk.ChatCompletionNewParams{
		Model:    req.Model,
		Messages: messages,
		StreamOptions: sdk.ChatCompletionStreamOptionsParam{
			IncludeUsage: sdk.Bool(true),
		},
	}
	if req.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = sdk.Int(int64(req.MaxOutputTokens))
	}

	stream := a.chat.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("openai chat.completions stream: %w", err)
	}

	events := make(chan provider.Event, 32)
	go pump(ctx, stream, events)
	return events, nil
}

func (a *Adapter) Close() error { return nil }

func pump(ctx context.Context, stream *ssestream.Stream[sdk.ChatCompletionChunk], events chan<- provider.Event) {
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

	started := false
	for stream.Next() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		chunk := stream.Current()
		if !started {
			started = true
			if !emit(&provider.StartEvent{}) {
				return
			}
		}
		if len(chunk.Choices) > 0 {
			if text := chunk.Choices[0].Delta.Content; text != "" {
				if !emit(&provider.DeltaEvent{Text: text}) {
					return
				}
			}
		}
		// With IncludeUsage set, the final chunk carries totals.
		if chunk.Usage.TotalTokens > 0 {
			if !emit(&provider.UsageEvent{
				InputTokens:  int(chunk.Usage.PromptTokens),
				OutputTokens: int(chunk.Usage.CompletionTokens),
			}) {
				return
			}
		}
	}

	if err := stream.Err(); err != nil {
		emit(&provider.ErrorEvent{Message: err.Error(), Retryable: isTransient(err)})
		return
	}
	emit(&provider.EndEvent{})
}

func isTransient(err error) bool {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}
