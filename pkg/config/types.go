package config

import (
	"time"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/ratelimit"
)

// Config is the fully resolved service configuration: YAML merged over
// built-in defaults, environment variables expanded, validated.
type Config struct {
	// Request bounds
	MaxFileSizeBytes      int64   `yaml:"max_file_size_bytes"`
	MaxConcurrentAnalyses int     `yaml:"max_concurrent_analyses"`
	MaxQueueSize          int     `yaml:"max_queue_size"`
	RequestTimeoutSeconds int     `yaml:"request_timeout_seconds"`
	MaxRateLimitWaitSecs  int     `yaml:"max_rate_limit_wait_seconds"`
	BudgetUSD             float64 `yaml:"budget_usd"`

	// Routing
	DefaultProvider string `yaml:"default_provider"`
	DefaultMode     string `yaml:"default_mode"`

	Server    ServerConfig              `yaml:"server"`
	Cache     CacheConfig               `yaml:"cache"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	// rate_limits.<provider>.<tier> overrides merged over the built-in
	// provider profiles.
	RateLimits map[string]map[string]ratelimit.Limits `yaml:"rate_limits"`
	Logging    LoggingConfig                          `yaml:"logging"`
	// api_keys.<provider>; a provider without a key is disabled at startup.
	APIKeys   map[string]string `yaml:"api_keys"`
	Database  *DatabaseConfig   `yaml:"database"` // nil disables the audit store
	Retention RetentionConfig   `yaml:"retention"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled     *bool  `yaml:"enabled"`
	Dir         string `yaml:"dir"`
	TTLHours    int    `yaml:"ttl_hours"`
	HotCapacity int    `yaml:"hot_capacity"`
	MaxBytes    int64  `yaml:"max_bytes"`
}

// TTL returns the configured entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// IsEnabled treats an absent flag as enabled.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// ProviderConfig holds per-provider routing settings.
type ProviderConfig struct {
	Enabled  *bool  `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	Fallback string `yaml:"fallback"`
	Tier     string `yaml:"tier"`
	// Endpoint applies to the local gRPC sidecar only.
	Endpoint string `yaml:"endpoint"`
}

// IsEnabled treats an absent flag as enabled.
func (p ProviderConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
	Backups  int    `yaml:"backups"`
}

// DatabaseConfig holds audit store connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// RetentionConfig holds cleanup service settings.
type RetentionConfig struct {
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	TaskRetention   time.Duration `yaml:"task_retention"`
	TokenRetention  time.Duration `yaml:"token_retention"`
	AuditRetention  time.Duration `yaml:"audit_retention"`
}

// RequestTimeout returns the per-analysis deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// MaxRateLimitWait returns the per-request rate-limit wait budget.
func (c *Config) MaxRateLimitWait() time.Duration {
	return time.Duration(c.MaxRateLimitWaitSecs) * time.Second
}

// APIKey returns the credential for a provider, if configured.
func (c *Config) APIKey(provider models.ProviderType) string {
	return c.APIKeys[string(provider)]
}

// ProviderEnabled reports whether a provider should be registered: it must
// not be explicitly disabled, and remote providers need a credential.
func (c *Config) ProviderEnabled(provider models.ProviderType) bool {
	pc := c.Providers[string(provider)]
	if !pc.IsEnabled() {
		return false
	}
	switch provider {
	case models.ProviderAnthropic, models.ProviderOpenAI:
		return c.APIKey(provider) != ""
	case models.ProviderLocal:
		return pc.Endpoint != ""
	}
	return false
}

// EffectiveDefaultProvider returns the provider new requests route to when
// no hint is given: the configured default when it is enabled, otherwise
// the enabled provider with the lowest priority value (ties break on name).
func (c *Config) EffectiveDefaultProvider() models.ProviderType {
	def := models.ProviderType(c.DefaultProvider)
	if c.ProviderEnabled(def) {
		return def
	}
	best := def
	bestPriority := 0
	for _, candidate := range []models.ProviderType{models.ProviderAnthropic, models.ProviderLocal, models.ProviderOpenAI} {
		if !c.ProviderEnabled(candidate) {
			continue
		}
		priority := c.Providers[string(candidate)].Priority
		if best == def || priority < bestPriority {
			best = candidate
			bestPriority = priority
		}
	}
	return best
}

// TierFor resolves the configured rate-limit tier for a provider.
func (c *Config) TierFor(provider models.ProviderType) ratelimit.Tier {
	pc := c.Providers[string(provider)]
	if pc.Tier == "" {
		return ratelimit.TierScale
	}
	return ratelimit.Tier(pc.Tier)
}

// Profiles returns the built-in provider profiles with any configured
// rate_limits overrides applied on top.
func (c *Config) Profiles() map[models.ProviderType]ratelimit.Profile {
	profiles := ratelimit.DefaultProfiles()
	for providerName, tierLimits := range c.RateLimits {
		provider := models.ProviderType(providerName)
		profile, ok := profiles[provider]
		if !ok {
			continue
		}
		for tierName, limits := range tierLimits {
			profile.Tiers[ratelimit.Tier(tierName)] = limits
		}
		profiles[provider] = profile
	}
	return profiles
}
