package pricing

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

func TestModeMapModelsExistInCatalog(t *testing.T) {
	for provider, mm := range modeMaps {
		catalog := catalogs[provider]
		require.NotNil(t, catalog, "provider %s has a mode map but no catalog", provider)
		for mode, model := range mm {
			_, ok := catalog[model]
			assert.True(t, ok, "%s mode %s maps to unknown model %s", provider, mode, model)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name     string
		nbytes   int
		provider models.ProviderType
		mode     models.AnalysisMode
		wantIn   int
		wantOut  int
	}{
		{"anthropic intelligent 100KB", 100 * 1024, models.ProviderAnthropic, models.ModeIntelligent, 40960, 16384},
		{"openai quick 4KB", 4096, models.ProviderOpenAI, models.ModeQuick, 1024, 204},
		{"anthropic max_token", 2500, models.ProviderAnthropic, models.ModeMaxToken, 1000, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := EstimateTokens(tt.nbytes, tt.provider, tt.mode)
			assert.Equal(t, tt.wantIn, in)
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestCost_SpecScenario(t *testing.T) {
	// 100 KB file, intelligent mode, Anthropic ratio: 40 960 input tokens,
	// 16 384 output tokens. A model priced 0.03/0.15 USD per 1k costs
	// 40.96*0.03 + 16.384*0.15 = 3.6864 USD.
	in, out := EstimateTokens(100*1024, models.ProviderAnthropic, models.ModeIntelligent)
	p := ModelPricing{InputPer1K: 0.03, OutputPer1K: 0.15, ContextWindow: 200_000}

	cost := Cost(p, in, out)
	assert.InEpsilon(t, 3.6864, cost, 0.01)
}

func TestChunksNeeded(t *testing.T) {
	p := ModelPricing{ContextWindow: 200_000}

	// 120k tokens in intelligent mode: budget 140k -> 1 chunk.
	assert.Equal(t, 1, ChunksNeeded(120_000, p, models.ModeIntelligent))
	// 300k tokens: ceil(300000/140000) = 3.
	assert.Equal(t, 3, ChunksNeeded(300_000, p, models.ModeIntelligent))
	// Tiny inputs still need one round trip.
	assert.Equal(t, 1, ChunksNeeded(0, p, models.ModeQuick))
}

func TestCompare_SortedAscendingByCost(t *testing.T) {
	estimates := Compare(100, models.ModeIntelligent, 0)
	require.NotEmpty(t, estimates)

	costs := make([]float64, len(estimates))
	for i, e := range estimates {
		costs[i] = e.CostUSD
	}
	assert.True(t, sort.Float64sAreSorted(costs), "estimates must be sorted ascending by cost")

	for _, e := range estimates {
		assert.True(t, e.WithinBudget, "no budget means everything is within budget")
		assert.GreaterOrEqual(t, e.ChunksNeeded, 1)
	}
}

func TestCompare_BudgetFlagsAndWarnings(t *testing.T) {
	// A large file against a tiny budget: expensive models flagged.
	estimates := Compare(10_000, models.ModeMaxToken, 0.01)

	flagged := 0
	for _, e := range estimates {
		if !e.WithinBudget {
			flagged++
			assert.Contains(t, e.Warnings, "exceeds budget")
		}
	}
	assert.Greater(t, flagged, 0, "expected at least one over-budget estimate")
}

func TestRecommend_CheapestWithinBudget(t *testing.T) {
	provider, model := Recommend(100, models.ModeIntelligent, 10, PreferQuality)
	require.NotEmpty(t, model)

	p, err := Lookup(provider, model)
	require.NoError(t, err)
	in, out := EstimateTokens(100*1024, provider, models.ModeIntelligent)
	assert.LessOrEqual(t, Cost(p, in, out), 10.0)
}

func TestRecommend_NoneFitsPicksCheapestOverall(t *testing.T) {
	// Budget impossibly small: free local model is cheapest overall.
	provider, model := Recommend(100_000, models.ModeMaxToken, math.SmallestNonzeroFloat64, PreferSpeed)
	assert.Equal(t, models.ProviderLocal, provider)
	assert.Equal(t, "analyzer-default", model)
}

func TestLookupErrors(t *testing.T) {
	_, err := Lookup("mystery", "claude-sonnet-4-5")
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = Lookup(models.ProviderAnthropic, "nope")
	assert.ErrorIs(t, err, ErrUnknownModel)
}
