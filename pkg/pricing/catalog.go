// Package pricing provides the static model catalog and pure cost arithmetic:
// token estimation, per-model pricing, comparison, and recommendation.
package pricing

import (
	"errors"
	"fmt"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

// Sentinel errors for catalog lookups.
var (
	// ErrUnknownProvider indicates the provider has no catalog.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnknownModel indicates the model is not in the provider's catalog.
	ErrUnknownModel = errors.New("unknown model")
)

// ModelPricing describes one model's pricing and capacity.
// Prices are USD per 1 000 tokens.
type ModelPricing struct {
	InputPer1K      float64
	OutputPer1K     float64
	ContextWindow   int
	MaxOutputTokens int

	// QualityRating and SpeedRating order models for recommendation
	// tie-breaking; higher is better.
	QualityRating int
	SpeedRating   int
}

// Catalog maps model id to pricing for one provider.
type Catalog map[string]ModelPricing

// catalogs is the static per-provider model catalog.
var catalogs = map[models.ProviderType]Catalog{
	models.ProviderAnthropic: {
		"claude-sonnet-4-5": {
			InputPer1K: 0.003, OutputPer1K: 0.015,
			ContextWindow: 200_000, MaxOutputTokens: 64_000,
			QualityRating: 9, SpeedRating: 7,
		},
		"claude-opus-4-1": {
			InputPer1K: 0.015, OutputPer1K: 0.075,
			ContextWindow: 200_000, MaxOutputTokens: 32_000,
			QualityRating: 10, SpeedRating: 4,
		},
		"claude-haiku-3-5": {
			InputPer1K: 0.0008, OutputPer1K: 0.004,
			ContextWindow: 200_000, MaxOutputTokens: 8_192,
			QualityRating: 6, SpeedRating: 10,
		},
	},
	models.ProviderOpenAI: {
		"gpt-4o": {
			InputPer1K: 0.0025, OutputPer1K: 0.01,
			ContextWindow: 128_000, MaxOutputTokens: 16_384,
			QualityRating: 8, SpeedRating: 7,
		},
		"gpt-4o-mini": {
			InputPer1K: 0.00015, OutputPer1K: 0.0006,
			ContextWindow: 128_000, MaxOutputTokens: 16_384,
			QualityRating: 5, SpeedRating: 10,
		},
	},
	models.ProviderLocal: {
		"analyzer-default": {
			InputPer1K: 0, OutputPer1K: 0,
			ContextWindow: 32_768, MaxOutputTokens: 8_192,
			QualityRating: 3, SpeedRating: 5,
		},
	},
}

// modeMaps maps analysis mode to the default model per provider.
// Invariant (checked by tests): every mapped model exists in the catalog.
var modeMaps = map[models.ProviderType]map[models.AnalysisMode]string{
	models.ProviderAnthropic: {
		models.ModeQuick:       "claude-haiku-3-5",
		models.ModeIntelligent: "claude-sonnet-4-5",
		models.ModeLargeFile:   "claude-sonnet-4-5",
		models.ModeMaxToken:    "claude-opus-4-1",
	},
	models.ProviderOpenAI: {
		models.ModeQuick:       "gpt-4o-mini",
		models.ModeIntelligent: "gpt-4o",
		models.ModeLargeFile:   "gpt-4o",
		models.ModeMaxToken:    "gpt-4o",
	},
	models.ProviderLocal: {
		models.ModeQuick:       "analyzer-default",
		models.ModeIntelligent: "analyzer-default",
		models.ModeLargeFile:   "analyzer-default",
		models.ModeMaxToken:    "analyzer-default",
	},
}

// CatalogFor returns the model catalog for a provider.
func CatalogFor(provider models.ProviderType) (Catalog, error) {
	c, ok := catalogs[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	// Copy so callers cannot mutate the static table.
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out, nil
}

// ModelForMode returns the provider's default model for the mode.
func ModelForMode(provider models.ProviderType, mode models.AnalysisMode) (string, error) {
	mm, ok := modeMaps[provider]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	model, ok := mm[mode]
	if !ok {
		return "", fmt.Errorf("%w: no model for mode %s", ErrUnknownModel, mode)
	}
	return model, nil
}

// Lookup returns pricing for one model of one provider.
func Lookup(provider models.ProviderType, model string) (ModelPricing, error) {
	c, ok := catalogs[provider]
	if !ok {
		return ModelPricing{}, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	p, ok := c[model]
	if !ok {
		return ModelPricing{}, fmt.Errorf("%w: %s/%s", ErrUnknownModel, provider, model)
	}
	return p, nil
}
