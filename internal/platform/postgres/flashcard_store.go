package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/notecards/internal/domain"
	"github.com/phrazzld/notecards/internal/platform/logger"
	"github.com/phrazzld/notecards/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the FlashcardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// Create implements store.FlashcardStore.Create.
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO flashcards (id, question, answer, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, card.ID, card.Question, card.Answer, card.CreatedAt); err != nil {
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return store.NewStoreError("flashcard", "create", "insert failed", MapError(err))
	}

	log.Debug("flashcard created", slog.String("flashcard_id", card.ID.String()))
	return nil
}

// List implements store.FlashcardStore.List.
func (s *PostgresFlashcardStore) List(ctx context.Context) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, question, answer, created_at
		FROM flashcards
		ORDER BY created_at DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query flashcards", slog.String("error", err.Error()))
		return nil, store.NewStoreError("flashcard", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.Flashcard{}
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(&card.ID, &card.Question, &card.Answer, &card.CreatedAt); err != nil {
			log.Error("failed to scan flashcard row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("flashcard", "list", "scan failed", MapError(err))
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating flashcard rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("flashcard", "list", "row iteration failed", MapError(err))
	}

	log.Debug("flashcards listed", slog.Int("count", len(cards)))
	return cards, nil
}
