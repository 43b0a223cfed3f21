package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/ratelimit"
)

func TestValidateDefaultsPass(t *testing.T) {
	assert.Empty(t, validate(DefaultConfig()))
}

func TestValidateProviderProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Providers = map[string]ProviderConfig{
		"anthropic": {Fallback: "anthropic"},
		"local":     {}, // enabled by default but no endpoint
		"bard":      {},
	}

	problems := validate(cfg)
	require.Len(t, problems, 3)

	fields := make([]string, 0, len(problems))
	for _, p := range problems {
		fields = append(fields, p.Field)
	}
	assert.Contains(t, fields, "anthropic.fallback")
	assert.Contains(t, fields, "local.endpoint")
	assert.Contains(t, fields, "bard")
}

func TestValidateRateLimitProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimits = map[string]map[string]ratelimit.Limits{
		"anthropic": {
			"platinum": {RequestsPerMinute: 10},
			"tier1":    {TokensPerMinute: -5},
		},
		"cohere": {
			"tier1": {RequestsPerMinute: 10},
		},
	}

	problems := validate(cfg)
	require.Len(t, problems, 3)
}

func TestValidateDatabaseRequiredFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database = &DatabaseConfig{Port: 5432}

	problems := validate(cfg)
	require.Len(t, problems, 2)
	assert.Equal(t, "database", problems[0].Section)
}
