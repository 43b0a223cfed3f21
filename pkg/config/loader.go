// Package config loads, merges, and validates the service configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Initialize loads, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Read the YAML file (absence is fine — defaults apply)
//  2. Expand ${VAR} and ${VAR:-default} environment references
//  3. Parse YAML into structs
//  4. Merge parsed values over built-in defaults
//  5. Validate, collecting every problem before failing
func Initialize(path string) (*Config, error) {
	log := slog.With("config_file", path)
	log.Info("Initializing configuration")

	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if problems := validate(cfg); len(problems) > 0 {
		return nil, problems
	}

	log.Info("Configuration initialized successfully",
		"default_provider", cfg.DefaultProvider,
		"default_mode", cfg.DefaultMode,
		"workers", cfg.MaxConcurrentAnalyses,
		"queue_size", cfg.MaxQueueSize,
		"cache_enabled", cfg.Cache.IsEnabled(),
		"audit_enabled", cfg.Database != nil)

	return cfg, nil
}

func load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Run on defaults plus whatever api_keys arrive via env
			slog.Warn("Config file not found, using built-in defaults", "path", path)
			return cfg, nil
		}
		return nil, &LoadError{File: path, Err: err}
	}

	data = ExpandEnv(data)

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("%w: %v", ErrInvalidYAML, err)}
	}

	// Merge file values over defaults; non-zero file values win.
	if err := mergo.Merge(cfg, &fileCfg, mergo.WithOverride); err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("failed to merge config: %w", err)}
	}

	return cfg, nil
}
