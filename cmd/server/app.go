package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/notecards/internal/api"
	"github.com/phrazzld/notecards/internal/config"
	"github.com/phrazzld/notecards/internal/generation"
	"github.com/phrazzld/notecards/internal/platform/gemini"
	"github.com/phrazzld/notecards/internal/platform/huggingface"
	"github.com/phrazzld/notecards/internal/platform/intasend"
	"github.com/phrazzld/notecards/internal/platform/postgres"
	"github.com/phrazzld/notecards/internal/store"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	health api.Pinger

	flashcardStore store.FlashcardStore
	paymentStore   store.PaymentStore
	generator      generation.Generator
	gateway        api.PaymentGateway
}

// newApplication wires stores, the generation provider and the payment
// gateway around an open database.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	generator, err := newGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	gateway, err := intasend.NewClient(cfg.Payment, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment client: %w", err)
	}

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		health:         db,
		flashcardStore: postgres.NewPostgresFlashcardStore(db, logger),
		paymentStore:   postgres.NewPostgresPaymentStore(db, logger),
		generator:      generator,
		gateway:        gateway,
	}, nil
}

// newGenerator selects the generation provider named in cfg.Provider.
func newGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return gemini.NewGenerator(ctx, logger, cfg)
	case config.ProviderHuggingFace:
		return huggingface.NewGenerator(logger, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
