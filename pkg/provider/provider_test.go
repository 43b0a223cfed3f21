package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider/providertest"
)

func TestRegistry_ResolveHint(t *testing.T) {
	r := provider.NewRegistry(models.ProviderAnthropic)
	anthropic := &providertest.Fake{Tag: models.ProviderAnthropic}
	openai := &providertest.Fake{Tag: models.ProviderOpenAI}
	r.Register(anthropic)
	r.Register(openai)

	p, err := r.Resolve("openai")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderOpenAI, p.Name())
}

func TestRegistry_ResolveDefault(t *testing.T) {
	r := provider.NewRegistry(models.ProviderAnthropic)
	r.Register(&providertest.Fake{Tag: models.ProviderAnthropic})

	p, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderAnthropic, p.Name())
}

func TestRegistry_UnknownHintFallsBackToDefault(t *testing.T) {
	r := provider.NewRegistry(models.ProviderAnthropic)
	r.Register(&providertest.Fake{Tag: models.ProviderAnthropic})

	p, err := r.Resolve("openai")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderAnthropic, p.Name())
}

func TestRegistry_HintFallbackChain(t *testing.T) {
	r := provider.NewRegistry(models.ProviderLocal)
	r.Register(&providertest.Fake{Tag: models.ProviderAnthropic})
	r.SetFallback(models.ProviderOpenAI, models.ProviderAnthropic)

	// Neither the hint nor the default is registered; the hint's
	// configured fallback is.
	p, err := r.Resolve("openai")
	require.NoError(t, err)
	assert.Equal(t, models.ProviderAnthropic, p.Name())
}

func TestRegistry_FallbackCycleTerminates(t *testing.T) {
	r := provider.NewRegistry(models.ProviderAnthropic)
	r.SetFallback(models.ProviderAnthropic, models.ProviderOpenAI)
	r.SetFallback(models.ProviderOpenAI, models.ProviderAnthropic)

	_, err := r.Resolve("openai")
	assert.ErrorIs(t, err, provider.ErrNoProvider)
}

func TestRegistry_MissingDefaultFails(t *testing.T) {
	r := provider.NewRegistry(models.ProviderLocal)
	_, err := r.Resolve("")
	assert.ErrorIs(t, err, provider.ErrNoProvider)
}

func TestFake_ReplaysScriptInOrder(t *testing.T) {
	f := providertest.NewFake(
		&provider.StartEvent{},
		&provider.DeltaEvent{Text: "RESULT"},
		&provider.UsageEvent{InputTokens: 10, OutputTokens: 5},
		&provider.EndEvent{},
	)

	events, err := f.Stream(context.Background(), provider.StreamRequest{Model: "m"})
	require.NoError(t, err)

	var got []provider.Event
	for ev := range events {
		got = append(got, ev)
	}
	require.Len(t, got, 4)
	assert.IsType(t, &provider.StartEvent{}, got[0])
	assert.Equal(t, "RESULT", got[1].(*provider.DeltaEvent).Text)
	assert.IsType(t, &provider.EndEvent{}, got[3])
	assert.Equal(t, 1, f.Calls())
}
