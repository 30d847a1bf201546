package api

import (
	"github.com/phrazzld/notecards/internal/domain"
)

// CreateFlashcardRequest is the body of POST /api/flashcards.
type CreateFlashcardRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

// CreateFlashcardResponse acknowledges a stored flashcard.
type CreateFlashcardResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Notes string `json:"notes"`
}

// GenerateResponse carries generated, unsaved drafts.
type GenerateResponse struct {
	Flashcards []domain.FlashcardDraft `json:"flashcards"`
}

// PayRequest is the body of POST /api/pay.
type PayRequest struct {
	Plan        string  `json:"plan"`
	Amount      float64 `json:"amount"       validate:"gt=0"`
	PhoneNumber string  `json:"phone_number" validate:"required"`
	Email       string  `json:"email"        validate:"omitempty,email"`
}

// PayResponse is returned by POST /api/pay on success and failure.
type PayResponse struct {
	Success  bool             `json:"success"`
	Checkout *domain.Checkout `json:"checkout,omitempty"`
	Error    string           `json:"error,omitempty"`
	TraceID  string           `json:"trace_id,omitempty"`
}

// PingResponse is returned by GET /api/ping.
type PingResponse struct {
	OK bool `json:"ok"`
}
