package config

import "time"

// DefaultConfig returns the built-in defaults. Values from YAML are merged
// on top, so every knob here must be safe for a credential-less dev setup.
func DefaultConfig() *Config {
	return &Config{
		MaxFileSizeBytes:      20 << 20, // 20 MiB
		MaxConcurrentAnalyses: 4,
		MaxQueueSize:          100,
		RequestTimeoutSeconds: 600,
		MaxRateLimitWaitSecs:  60,

		DefaultProvider: "anthropic",
		DefaultMode:     "intelligent",

		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Cache: CacheConfig{
			Dir:         "./data/cache",
			TTLHours:    24,
			HotCapacity: 256,
			MaxBytes:    256 << 20,
		},
		Providers: map[string]ProviderConfig{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		APIKeys: map[string]string{},
		Retention: RetentionConfig{
			CleanupInterval: 10 * time.Minute,
			TaskRetention:   time.Hour,
			TokenRetention:  time.Hour,
			AuditRetention:  30 * 24 * time.Hour,
		},
	}
}
