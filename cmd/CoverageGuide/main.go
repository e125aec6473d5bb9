package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BTreeMap/CoverageGuide/internal/api"
	"github.com/BTreeMap/CoverageGuide/internal/config"
	"github.com/BTreeMap/CoverageGuide/internal/content"
	"github.com/BTreeMap/CoverageGuide/internal/flow"
	"github.com/BTreeMap/CoverageGuide/internal/genai"
	"github.com/BTreeMap/CoverageGuide/internal/models"
	"github.com/BTreeMap/CoverageGuide/internal/store"
	"github.com/BTreeMap/CoverageGuide/internal/telemetry"
	"github.com/BTreeMap/CoverageGuide/internal/web"
)

// Default configuration constants
const (
	// ServiceName identifies the process in traces
	ServiceName = "coverage-guide"
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout = 10 * time.Second
	// SweepInterval is how often idle sessions are collected
	SweepInterval = 5 * time.Minute
)

func main() {
	// Initialize structured logger
	level := initializeLogger()

	// Load environment configuration
	cfg, err := loadEnvironmentConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Parse command line flags
	parseCommandLineFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	lvl, _ := cfg.Level()
	level.Set(lvl)

	if err := run(cfg); err != nil {
		slog.Error("CoverageGuide failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("CoverageGuide exited successfully")
}

// initializeLogger sets up structured logging at debug level until the configured level is known
func initializeLogger() *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(slog.LevelDebug)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return level
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() (config.Config, error) {
	return config.Load()
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(cfg *config.Config) {
	flag.StringVar(&cfg.Variant, "variant", cfg.Variant, "guide variant, consumer or employee (overrides $GUIDE_VARIANT)")
	flag.StringVar(&cfg.APIAddr, "api-addr", cfg.APIAddr, "API server address (overrides $API_ADDR)")
	flag.StringVar(&cfg.Provider, "provider", cfg.Provider, "text generation provider, openai or anthropic (overrides $GENAI_PROVIDER)")
	flag.StringVar(&cfg.OpenAIKey, "openai-api-key", cfg.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)")
	flag.StringVar(&cfg.AnthropicKey, "anthropic-api-key", cfg.AnthropicKey, "Anthropic API key (overrides $ANTHROPIC_API_KEY)")
	flag.StringVar(&cfg.Model, "model", cfg.Model, "chat model (overrides $GENAI_MODEL)")
	flag.StringVar(&cfg.SystemPromptFile, "system-prompt-file", cfg.SystemPromptFile, "advisor system prompt file (overrides $SYSTEM_PROMPT_FILE)")
	flag.StringVar(&cfg.SessionBackend, "session-backend", cfg.SessionBackend, "session store, memory or sqlite (overrides $SESSION_BACKEND)")
	flag.StringVar(&cfg.SQLiteDSN, "sqlite-dsn", cfg.SQLiteDSN, "in-memory SQLite DSN for the sqlite backend (overrides $SQLITE_DSN)")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "idle session lifetime (overrides $SESSION_TTL)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (overrides $LOG_LEVEL)")

	flag.Parse()

	slog.Debug("flags parsed",
		"variant", cfg.Variant,
		"apiAddr", cfg.APIAddr,
		"provider", cfg.Provider,
		"openaiKeySet", cfg.OpenAIKey != "",
		"anthropicKeySet", cfg.AnthropicKey != "",
		"model", cfg.Model,
		"systemPromptFile", cfg.SystemPromptFile,
		"sessionBackend", cfg.SessionBackend,
		"sqliteDSN", cfg.SQLiteDSN,
		"sessionTTL", cfg.SessionTTL,
		"logLevel", cfg.LogLevel)
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, ServiceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	variant := models.Variant(cfg.Variant)
	// The tables are compiled in; invalid tables are a build defect.
	guide := content.MustNew(variant)
	system, err := flow.LoadSystemPrompt(cfg.SystemPromptFile, variant)
	if err != nil {
		return err
	}
	sessions, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer sessions.Close()

	text, images := buildGenAI(cfg, variant)
	mgr := flow.NewManager(flow.ManagerConfig{
		Content: guide,
		Store:   sessions,
		Conversation: flow.ConversationConfig{
			Generator:   text,
			System:      system,
			Temperature: cfg.Temperature,
		},
		Portraits: flow.NewPortraitLoader(images),
	})

	shell, err := web.NewHandler(mgr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           api.NewServer(mgr, api.WithShell(shell), api.WithAllowedOrigins(cfg.AllowedOrigins)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Replies wait on the text generator.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go mgr.RunSweeper(ctx, cfg.SessionTTL, SweepInterval)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("CoverageGuide listening", "addr", cfg.APIAddr, "variant", variant)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	mgr.Wait()
	return nil
}

// buildStore constructs the configured session store
func buildStore(cfg config.Config) (store.Store, error) {
	if cfg.SessionBackend == config.BackendSQLite {
		slog.Debug("Using in-memory SQLite session store", "dsn", cfg.SQLiteDSN)
		return store.NewSQLiteStore(store.WithDSN(cfg.SQLiteDSN))
	}
	slog.Debug("Using in-memory session store")
	return store.NewInMemoryStore(), nil
}

// buildGenAI constructs the text and image generators. Missing credentials leave the advisor on
// its static fallback and portraits unavailable.
func buildGenAI(cfg config.Config, variant models.Variant) (genai.TextGenerator, genai.ImageGenerator) {
	var text genai.TextGenerator = genai.Unconfigured{}
	var images genai.ImageGenerator

	textOpts := []genai.Option{genai.WithAPIKey(cfg.APIKey())}
	if cfg.Model != "" {
		textOpts = append(textOpts, genai.WithModel(cfg.Model))
	}
	switch cfg.Provider {
	case config.ProviderAnthropic:
		if claude, err := genai.NewAnthropicClient(textOpts...); err != nil {
			slog.Warn("Anthropic client unavailable, advisor will use fallback replies", "error", err)
		} else {
			text = claude
		}
	default:
		if cli, err := genai.NewClient(textOpts...); err != nil {
			slog.Warn("OpenAI client unavailable, advisor will use fallback replies", "error", err)
		} else {
			text = cli
		}
	}

	// Portraits always come from OpenAI, whichever provider answers questions.
	if variant == models.VariantEmployee {
		imageOpts := []genai.Option{genai.WithAPIKey(cfg.OpenAIKey)}
		if cfg.ImageModel != "" {
			imageOpts = append(imageOpts, genai.WithImageModel(cfg.ImageModel))
		}
		if cli, err := genai.NewClient(imageOpts...); err != nil {
			slog.Warn("Portraits unavailable", "error", err)
		} else {
			images = cli
		}
	}
	slog.Debug("GenAI configured", "provider", cfg.Provider, "portraits", images != nil)
	return text, images
}
