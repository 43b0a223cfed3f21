// Analyzer server — accepts Android ANR and tombstone logs over HTTP,
// dispatches them to AI providers through the worker pool, and streams
// analysis results back to clients.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/api"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/audit"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cache"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cleanup"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/config"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/database"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/dispatch"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider/anthropic"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider/local"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider/openai"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/queue"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/ratelimit"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setupLogger(cfg config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if cfg.Dir != "" {
		rotated := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "analyzer.log"),
			MaxBackups: cfg.Backups,
		}
		if cfg.MaxBytes > 0 {
			rotated.MaxSize = int(cfg.MaxBytes >> 20) // lumberjack counts megabytes
			if rotated.MaxSize == 0 {
				rotated.MaxSize = 1
			}
		}
		out = io.MultiWriter(os.Stdout, rotated)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// buildRegistry creates and registers every enabled provider. A provider
// missing its credential or endpoint is skipped with a warning; when that
// skips the configured default, the enabled provider with the lowest
// priority value takes its place.
func buildRegistry(cfg *config.Config) (*provider.Registry, error) {
	def := cfg.EffectiveDefaultProvider()
	if string(def) != cfg.DefaultProvider {
		slog.Warn("Configured default provider unavailable, elected by priority",
			"configured", cfg.DefaultProvider, "effective", def)
	}
	registry := provider.NewRegistry(def)
	for name, pc := range cfg.Providers {
		if pc.Fallback != "" {
			registry.SetFallback(models.ProviderType(name), models.ProviderType(pc.Fallback))
		}
	}
	registered := 0

	if cfg.ProviderEnabled(models.ProviderAnthropic) {
		p, err := anthropic.NewWithKey(cfg.APIKey(models.ProviderAnthropic))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize anthropic provider: %w", err)
		}
		registry.Register(p)
		registered++
		slog.Info("Provider registered", "provider", "anthropic")
	} else {
		slog.Warn("Provider disabled", "provider", "anthropic")
	}

	if cfg.ProviderEnabled(models.ProviderOpenAI) {
		p, err := openai.NewWithKey(cfg.APIKey(models.ProviderOpenAI))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize openai provider: %w", err)
		}
		registry.Register(p)
		registered++
		slog.Info("Provider registered", "provider", "openai")
	} else {
		slog.Warn("Provider disabled", "provider", "openai")
	}

	if cfg.ProviderEnabled(models.ProviderLocal) {
		endpoint := cfg.Providers[string(models.ProviderLocal)].Endpoint
		// grpc.NewClient dials lazily; the first RPC connects
		p, err := local.New(endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local provider at %s: %w", endpoint, err)
		}
		registry.Register(p)
		registered++
		slog.Info("Provider registered", "provider", "local", "endpoint", endpoint)
	}

	if registered == 0 {
		return nil, errors.New("no providers enabled — configure at least one api key or the local endpoint")
	}
	return registry, nil
}

func main() {
	configFile := flag.String("config",
		getEnv("CONFIG_FILE", "./deploy/config/analyzer.yaml"),
		"Path to configuration file")
	flag.Parse()

	// Load .env next to the config file before reading configuration
	envPath := filepath.Join(filepath.Dir(*configFile), ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	cfg, err := config.Initialize(*configFile)
	if err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Logging)
	slog.Info("Starting analyzer",
		"addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"workers", cfg.MaxConcurrentAnalyses)

	ctx := context.Background()

	// Audit store (optional)
	var dbClient *database.Client
	var auditService *audit.Service
	auditor := dispatch.Auditor(dispatch.NopAuditor{})
	if cfg.Database != nil {
		dbClient, err = database.NewClient(ctx, database.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		})
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				slog.Error("Error closing database client", "error", err)
			}
		}()
		auditService = audit.NewService(dbClient.Client)
		auditor = auditService
		slog.Info("Connected to PostgreSQL audit store")
	} else {
		slog.Warn("Audit store disabled — no database configured")
	}

	// Result cache
	store, err := cache.New(cache.Config{
		Dir:        cfg.Cache.Dir,
		MaxEntries: cfg.Cache.HotCapacity,
		MaxBytes:   cfg.Cache.MaxBytes,
		DefaultTTL: cfg.Cache.TTL(),
	}, slog.Default())
	if err != nil {
		slog.Error("Failed to open result cache", "dir", cfg.Cache.Dir, "error", err)
		os.Exit(1)
	}

	// Providers
	registry, err := buildRegistry(cfg)
	if err != nil {
		slog.Error("Failed to build provider registry", "error", err)
		os.Exit(1)
	}
	defer registry.CloseAll()

	// Rate limiter with configured tiers and overrides
	tiers := map[models.ProviderType]ratelimit.Tier{
		models.ProviderAnthropic: cfg.TierFor(models.ProviderAnthropic),
		models.ProviderOpenAI:    cfg.TierFor(models.ProviderOpenAI),
		models.ProviderLocal:     cfg.TierFor(models.ProviderLocal),
	}
	limiter := ratelimit.NewManager(ratelimit.Limits{}, cfg.Profiles(), tiers)

	cancels := cancel.NewManager()

	engine := dispatch.NewEngine(dispatch.Config{
		MaxFileSizeBytes: cfg.MaxFileSizeBytes,
		RequestTimeout:   cfg.RequestTimeout(),
		MaxRateLimitWait: cfg.MaxRateLimitWait(),
		BudgetUSD:        cfg.BudgetUSD,
	}, registry, store, limiter, cancels, auditor, slog.Default())

	// Task queue + worker pool. Workers drain the engine's event stream
	// into the task result; live consumers watch the WebSocket feed.
	tasks := queue.New(cfg.MaxQueueSize)
	pool := queue.NewPool(tasks, cancels, func(task queue.Task, token *cancel.Token) ([]byte, error) {
		var buf bytes.Buffer
		for ev := range engine.Analyze(context.Background(), task.Request, token) {
			switch e := ev.(type) {
			case *dispatch.ContentEvent:
				buf.WriteString(e.Text)
			case *dispatch.ErrorEvent:
				return nil, fmt.Errorf("%s: %s", e.Kind, e.Text)
			case *dispatch.CancelledEvent:
				return nil, cancel.ErrCancelled
			}
		}
		return buf.Bytes(), nil
	}, cfg.MaxConcurrentAnalyses, slog.Default())
	pool.Start()

	// Retention
	cleanupService := cleanup.NewService(cleanup.Config{
		Interval:       cfg.Retention.CleanupInterval,
		TaskRetention:  cfg.Retention.TaskRetention,
		TokenRetention: cfg.Retention.TokenRetention,
		AuditRetention: cfg.Retention.AuditRetention,
	}, tasks, cancels, store, auditService)
	cleanupService.Start(ctx)

	// HTTP server
	server := api.NewServer(cfg, engine, tasks, pool, cancels, store, dbClient, slog.Default())
	httpServer := server.HTTPServer(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	slog.Info("Analyzer started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// Ordered shutdown: stop accepting work, drain workers, stop retention,
	// then close the HTTP server.
	done := make(chan struct{})
	go func() {
		pool.Shutdown("server shutting down")
		close(done)
	}()
	select {
	case <-done:
		slog.Info("Worker pool stopped gracefully")
	case <-time.After(30 * time.Second):
		slog.Warn("Worker pool shutdown timeout exceeded")
	}

	cleanupService.Stop()

	if err := api.Shutdown(ctx, httpServer, 5*time.Second); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
