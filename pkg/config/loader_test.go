package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analyzer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitializeMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Initialize(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, int64(20<<20), cfg.MaxFileSizeBytes)
	assert.Equal(t, "anthropic", cfg.DefaultProvider)
	assert.Equal(t, "intelligent", cfg.DefaultMode)
	assert.Equal(t, 4, cfg.MaxConcurrentAnalyses)
	assert.True(t, cfg.Cache.IsEnabled())
	assert.Nil(t, cfg.Database)
}

func TestInitializeMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
max_concurrent_analyses: 8
default_mode: quick
cache:
  ttl_hours: 48
logging:
  format: json
`)

	cfg, err := Initialize(path)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 8, cfg.MaxConcurrentAnalyses)
	assert.Equal(t, "quick", cfg.DefaultMode)
	assert.Equal(t, 48, cfg.Cache.TTLHours)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Untouched defaults survive the merge
	assert.Equal(t, 100, cfg.MaxQueueSize)
	assert.Equal(t, "./data/cache", cfg.Cache.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestInitializeExpandsEnvReferences(t *testing.T) {
	t.Setenv("TEST_ANTHROPIC_KEY", "sk-live-xyz")

	path := writeConfig(t, `
api_keys:
  anthropic: ${TEST_ANTHROPIC_KEY}
  openai: ${TEST_UNSET_OPENAI_KEY:-}
`)

	cfg, err := Initialize(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-live-xyz", cfg.APIKeys["anthropic"])
	assert.Empty(t, cfg.APIKeys["openai"])
	assert.True(t, cfg.ProviderEnabled("anthropic"))
	assert.False(t, cfg.ProviderEnabled("openai"), "provider without credential stays disabled")
}

func TestInitializeInvalidYAML(t *testing.T) {
	path := writeConfig(t, "cache: [not: a map")

	_, err := Initialize(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestInitializeCollectsAllValidationProblems(t *testing.T) {
	path := writeConfig(t, `
max_concurrent_analyses: 0
default_provider: watson
default_mode: telepathic
logging:
  level: shout
`)

	_, err := Initialize(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)

	var problems ValidationErrors
	require.ErrorAs(t, err, &problems)
	assert.Len(t, problems, 4, "every problem reported in one pass: %v", err)
}

func TestProfilesAppliesRateLimitOverrides(t *testing.T) {
	path := writeConfig(t, `
rate_limits:
  anthropic:
    tier1:
      rpm: 75
      tpm: 90000
`)

	cfg, err := Initialize(path)
	require.NoError(t, err)

	profiles := cfg.Profiles()
	limits, err := profiles["anthropic"].LimitsForModel("tier1", "claude-sonnet-4-5")
	require.NoError(t, err)
	assert.Equal(t, 75, limits.RequestsPerMinute)
	assert.Equal(t, 90000, limits.TokensPerMinute)
}

func TestEffectiveDefaultProviderElectsByPriority(t *testing.T) {
	path := writeConfig(t, `
default_provider: anthropic
providers:
  openai:
    priority: 2
  local:
    priority: 1
    endpoint: localhost:9000
api_keys:
  openai: sk-present
`)

	cfg, err := Initialize(path)
	require.NoError(t, err)

	// The configured default has no credential; the lowest-priority
	// enabled provider takes its place.
	assert.Equal(t, "local", string(cfg.EffectiveDefaultProvider()))
}

func TestEffectiveDefaultProviderKeepsEnabledDefault(t *testing.T) {
	path := writeConfig(t, `
providers:
  local:
    priority: 0
    endpoint: localhost:9000
api_keys:
  anthropic: sk-present
`)

	cfg, err := Initialize(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", string(cfg.EffectiveDefaultProvider()))
}

func TestProviderDisabledExplicitly(t *testing.T) {
	path := writeConfig(t, `
providers:
  anthropic:
    enabled: false
api_keys:
  anthropic: sk-present
`)

	cfg, err := Initialize(path)
	require.NoError(t, err)

	assert.False(t, cfg.ProviderEnabled("anthropic"))
}
