package config

import (
	"fmt"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/ratelimit"
)

// knownProviders is the closed set of provider names the service routes to.
var knownProviders = map[string]bool{
	string(models.ProviderAnthropic): true,
	string(models.ProviderOpenAI):    true,
	string(models.ProviderLocal):     true,
}

var knownLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var knownLogFormats = map[string]bool{"text": true, "json": true}

// validate checks the whole config and returns every problem found, so a
// bad deployment fails once with a complete diagnostic instead of
// one-error-per-restart.
func validate(cfg *Config) ValidationErrors {
	var problems ValidationErrors
	addf := func(section, field, format string, args ...any) {
		problems = append(problems, &ValidationError{
			Section: section,
			Field:   field,
			Err:     fmt.Errorf(format, args...),
		})
	}

	// Request bounds
	if cfg.MaxFileSizeBytes <= 0 {
		addf("limits", "max_file_size_bytes", "must be positive, got %d", cfg.MaxFileSizeBytes)
	}
	if cfg.MaxConcurrentAnalyses < 1 {
		addf("limits", "max_concurrent_analyses", "must be at least 1, got %d", cfg.MaxConcurrentAnalyses)
	}
	if cfg.MaxQueueSize < 1 {
		addf("limits", "max_queue_size", "must be at least 1, got %d", cfg.MaxQueueSize)
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		addf("limits", "request_timeout_seconds", "must be positive, got %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.MaxRateLimitWaitSecs < 0 {
		addf("limits", "max_rate_limit_wait_seconds", "must not be negative, got %d", cfg.MaxRateLimitWaitSecs)
	}
	if cfg.BudgetUSD < 0 {
		addf("limits", "budget_usd", "must not be negative, got %g", cfg.BudgetUSD)
	}

	// Routing
	if !knownProviders[cfg.DefaultProvider] {
		addf("routing", "default_provider", "unknown provider '%s'", cfg.DefaultProvider)
	}
	if !models.AnalysisMode(cfg.DefaultMode).IsValid() {
		addf("routing", "default_mode", "unknown mode '%s'", cfg.DefaultMode)
	}

	// Server
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		addf("server", "port", "must be in 1..65535, got %d", cfg.Server.Port)
	}

	// Cache
	if cfg.Cache.IsEnabled() && cfg.Cache.Dir == "" {
		addf("cache", "dir", "required when cache is enabled")
	}
	if cfg.Cache.TTLHours < 0 {
		addf("cache", "ttl_hours", "must not be negative, got %d", cfg.Cache.TTLHours)
	}
	if cfg.Cache.HotCapacity < 0 {
		addf("cache", "hot_capacity", "must not be negative, got %d", cfg.Cache.HotCapacity)
	}

	// Providers
	for name, pc := range cfg.Providers {
		if !knownProviders[name] {
			addf("providers", name, "unknown provider")
			continue
		}
		if pc.Fallback != "" && !knownProviders[pc.Fallback] {
			addf("providers", name+".fallback", "unknown provider '%s'", pc.Fallback)
		}
		if pc.Fallback == name {
			addf("providers", name+".fallback", "provider cannot fall back to itself")
		}
		if pc.Priority < 0 {
			addf("providers", name+".priority", "must not be negative, got %d", pc.Priority)
		}
		if pc.Tier != "" && !ratelimit.Tier(pc.Tier).IsValid() {
			addf("providers", name+".tier", "unknown tier '%s'", pc.Tier)
		}
		if name == string(models.ProviderLocal) && pc.IsEnabled() && pc.Endpoint == "" {
			addf("providers", name+".endpoint", "required for the local provider")
		}
	}

	// Rate-limit overrides
	for providerName, tiers := range cfg.RateLimits {
		if !knownProviders[providerName] {
			addf("rate_limits", providerName, "unknown provider")
			continue
		}
		for tierName, limits := range tiers {
			if !ratelimit.Tier(tierName).IsValid() {
				addf("rate_limits", providerName+"."+tierName, "unknown tier")
			}
			if limits.RequestsPerMinute < 0 || limits.TokensPerMinute < 0 ||
				limits.RequestsPerDay < 0 || limits.TokensPerDay < 0 || limits.Concurrent < 0 {
				addf("rate_limits", providerName+"."+tierName, "limits must not be negative")
			}
		}
	}

	// Logging
	if !knownLogLevels[cfg.Logging.Level] {
		addf("logging", "level", "must be one of debug/info/warn/error, got '%s'", cfg.Logging.Level)
	}
	if !knownLogFormats[cfg.Logging.Format] {
		addf("logging", "format", "must be 'text' or 'json', got '%s'", cfg.Logging.Format)
	}
	if cfg.Logging.MaxBytes < 0 {
		addf("logging", "max_bytes", "must not be negative, got %d", cfg.Logging.MaxBytes)
	}
	if cfg.Logging.Backups < 0 {
		addf("logging", "backups", "must not be negative, got %d", cfg.Logging.Backups)
	}

	// Database
	if db := cfg.Database; db != nil {
		if db.Host == "" {
			addf("database", "host", "required")
		}
		if db.Port < 1 || db.Port > 65535 {
			addf("database", "port", "must be in 1..65535, got %d", db.Port)
		}
		if db.Database == "" {
			addf("database", "database", "required")
		}
	}

	// Retention
	if cfg.Retention.CleanupInterval <= 0 {
		addf("retention", "cleanup_interval", "must be positive, got %v", cfg.Retention.CleanupInterval)
	}

	return problems
}
