package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ersonp/dex-core/internal/application/handlers"
	"github.com/ersonp/dex-core/internal/domain/services"
	"github.com/ersonp/dex-core/internal/infrastructure/config"
	llm "github.com/ersonp/dex-core/internal/infrastructure/llm/openai"
	"github.com/ersonp/dex-core/internal/infrastructure/pokeapi"
	"github.com/ersonp/dex-core/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Cache      *sqlite.Repository
	AskHandler *handlers.AskHandler
}

// newLogger builds the process logger.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if globalDebug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// withStoreDeps builds only the config, logger and cache repository.
// Used by commands that never touch the LLM (stats).
func withStoreDeps(ctx context.Context, fn func(ctx context.Context, cfg *config.Config, logger *zap.Logger, cache *sqlite.Repository) error) error {
	cfg, err := config.Load(globalConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	cache, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer cache.Close()

	if err := cache.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	return fn(ctx, cfg, logger, cache)
}

// withDeps loads config and builds the full pipeline, then calls fn.
// Clients are constructed once here and shared; none re-reads config.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withStoreDeps(ctx, func(ctx context.Context, cfg *config.Config, logger *zap.Logger, cache *sqlite.Repository) error {
		api, err := pokeapi.NewClient(cfg.PokeAPI)
		if err != nil {
			return fmt.Errorf("creating pokeapi client: %w", err)
		}

		llmClient, err := llm.NewClient(cfg.LLM, cfg.Answer.Locale)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}

		pokemonService := services.NewPokemonService(api, cache, logger)
		qaService := services.NewQAService(llmClient, pokemonService, cache, cfg.Answer.Locale, logger)

		return fn(&Deps{
			Config:     cfg,
			Logger:     logger,
			Cache:      cache,
			AskHandler: handlers.NewAskHandler(qaService),
		})
	})
}
