package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardQuestionEmpty is returned when a flashcard has no question.
	ErrFlashcardQuestionEmpty = fmt.Errorf("%w: flashcard question cannot be empty", ErrValidation)

	// ErrFlashcardAnswerEmpty is returned when a flashcard has no answer.
	ErrFlashcardAnswerEmpty = fmt.Errorf("%w: flashcard answer cannot be empty", ErrValidation)

	// ErrFlashcardIDEmpty is returned when a persisted flashcard has a nil ID.
	ErrFlashcardIDEmpty = fmt.Errorf("%w: flashcard ID cannot be empty", ErrValidation)
)

// FlashcardDraft is a question/answer pair returned by generation that has
// not been confirmed stored. It has no identity.
type FlashcardDraft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Validate checks that both sides of the draft carry text.
func (d FlashcardDraft) Validate() error {
	if strings.TrimSpace(d.Question) == "" {
		return ErrFlashcardQuestionEmpty
	}
	if strings.TrimSpace(d.Answer) == "" {
		return ErrFlashcardAnswerEmpty
	}
	return nil
}

// Flashcard is a flashcard confirmed present in persistent storage. The ID is
// assigned by the storage backend; clients treat it as opaque.
type Flashcard struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFlashcard creates a Flashcard from a draft, assigning a new ID and
// creation timestamp. Returns an error if the draft is invalid.
func NewFlashcard(draft FlashcardDraft) (*Flashcard, error) {
	card := &Flashcard{
		ID:        uuid.New(),
		Question:  strings.TrimSpace(draft.Question),
		Answer:    strings.TrimSpace(draft.Answer),
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	return f.Draft().Validate()
}

// Draft returns the question/answer content of the flashcard without its identity.
func (f *Flashcard) Draft() FlashcardDraft {
	return FlashcardDraft{Question: f.Question, Answer: f.Answer}
}
