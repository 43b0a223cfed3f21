// Package ratelimit enforces sliding-window request and token limits per
// client and per (provider, model), with tiered provider profiles.
package ratelimit

import (
	"errors"
	"fmt"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

// ErrUnknownTier indicates a provider profile was asked for a tier it does
// not define. Unknown tiers fail the operation explicitly.
var ErrUnknownTier = errors.New("unknown rate-limit tier")

// Tier is a named level of rate-limit capacity for a provider.
type Tier string

// Provider capacity tiers, in increasing order.
const (
	TierFree  Tier = "free"
	Tier1     Tier = "tier1"
	Tier2     Tier = "tier2"
	Tier3     Tier = "tier3"
	Tier4     Tier = "tier4"
	TierScale Tier = "scale"
)

// IsValid checks if the tier is valid.
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, Tier1, Tier2, Tier3, Tier4, TierScale:
		return true
	default:
		return false
	}
}

// Limits is one dimension's capacity. Zero fields mean "unlimited".
type Limits struct {
	RequestsPerMinute int `yaml:"rpm"`
	TokensPerMinute   int `yaml:"tpm"`
	RequestsPerDay    int `yaml:"rpd"`
	TokensPerDay      int `yaml:"tpd"`
	Concurrent        int `yaml:"concurrent"`
}

// Profile holds a provider's tiered limits with optional per-model overrides
// within the active tier (faster cheap models typically get a higher TPM).
type Profile struct {
	Tiers          map[Tier]Limits   `yaml:"tiers"`
	ModelOverrides map[string]Limits `yaml:"model_overrides"`
}

// LimitsForModel resolves the effective limits for a model in the given tier.
func (p Profile) LimitsForModel(tier Tier, model string) (Limits, error) {
	base, ok := p.Tiers[tier]
	if !ok {
		return Limits{}, fmt.Errorf("%w: %s", ErrUnknownTier, tier)
	}
	if override, ok := p.ModelOverrides[model]; ok {
		if override.RequestsPerMinute > 0 {
			base.RequestsPerMinute = override.RequestsPerMinute
		}
		if override.TokensPerMinute > 0 {
			base.TokensPerMinute = override.TokensPerMinute
		}
		if override.RequestsPerDay > 0 {
			base.RequestsPerDay = override.RequestsPerDay
		}
		if override.TokensPerDay > 0 {
			base.TokensPerDay = override.TokensPerDay
		}
		if override.Concurrent > 0 {
			base.Concurrent = override.Concurrent
		}
	}
	return base, nil
}

// DefaultProfiles returns the built-in provider profiles. Environment
// configuration overrides these through config merging.
func DefaultProfiles() map[models.ProviderType]Profile {
	return map[models.ProviderType]Profile{
		models.ProviderAnthropic: {
			Tiers: map[Tier]Limits{
				TierFree:  {RequestsPerMinute: 5, TokensPerMinute: 25_000, RequestsPerDay: 300, TokensPerDay: 300_000, Concurrent: 1},
				Tier1:     {RequestsPerMinute: 50, TokensPerMinute: 50_000, RequestsPerDay: 5_000, TokensPerDay: 1_000_000, Concurrent: 2},
				Tier2:     {RequestsPerMinute: 100, TokensPerMinute: 100_000, RequestsPerDay: 10_000, TokensPerDay: 2_500_000, Concurrent: 4},
				Tier3:     {RequestsPerMinute: 200, TokensPerMinute: 200_000, RequestsPerDay: 20_000, TokensPerDay: 5_000_000, Concurrent: 8},
				Tier4:     {RequestsPerMinute: 400, TokensPerMinute: 400_000, RequestsPerDay: 50_000, TokensPerDay: 10_000_000, Concurrent: 16},
				TierScale: {RequestsPerMinute: 1_000, TokensPerMinute: 2_000_000, Concurrent: 64},
			},
			ModelOverrides: map[string]Limits{
				"claude-haiku-3-5": {TokensPerMinute: 100_000},
			},
		},
		models.ProviderOpenAI: {
			Tiers: map[Tier]Limits{
				TierFree:  {RequestsPerMinute: 3, TokensPerMinute: 40_000, RequestsPerDay: 200, Concurrent: 1},
				Tier1:     {RequestsPerMinute: 60, TokensPerMinute: 60_000, RequestsPerDay: 10_000, Concurrent: 2},
				Tier2:     {RequestsPerMinute: 500, TokensPerMinute: 80_000, Concurrent: 8},
				Tier3:     {RequestsPerMinute: 5_000, TokensPerMinute: 160_000, Concurrent: 16},
				Tier4:     {RequestsPerMinute: 10_000, TokensPerMinute: 1_000_000, Concurrent: 32},
				TierScale: {RequestsPerMinute: 10_000, TokensPerMinute: 5_000_000, Concurrent: 128},
			},
			ModelOverrides: map[string]Limits{
				"gpt-4o-mini": {TokensPerMinute: 200_000},
			},
		},
		models.ProviderLocal: {
			Tiers: map[Tier]Limits{
				// A sidecar has no billing tiers; "scale" is the only level.
				TierScale: {RequestsPerMinute: 600, TokensPerMinute: 5_000_000, Concurrent: 32},
			},
		},
	}
}
