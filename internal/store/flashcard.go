package store

import (
	"context"

	"github.com/phrazzld/notecards/internal/domain"
)

// FlashcardStore defines the interface for flashcard persistence.
type FlashcardStore interface {
	// Create saves a new flashcard. The flashcard must already carry its
	// ID and CreatedAt (see domain.NewFlashcard).
	// Returns ErrInvalidEntity wrapping the validation error if the card is invalid.
	Create(ctx context.Context, card *domain.Flashcard) error

	// List returns every stored flashcard, newest first by CreatedAt.
	// An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]domain.Flashcard, error)
}
