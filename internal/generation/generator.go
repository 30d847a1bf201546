package generation

import (
	"context"

	"github.com/phrazzld/notecards/internal/domain"
)

// Generator defines the interface for generating flashcards from text.
// This interface serves as a boundary between the application core and
// external AI/LLM services.
type Generator interface {
	// GenerateDrafts creates flashcard drafts from the provided notes.
	// Drafts are returned in the order the model produced them and have
	// already been filtered to complete question/answer pairs.
	GenerateDrafts(ctx context.Context, notes string) ([]domain.FlashcardDraft, error)
}
