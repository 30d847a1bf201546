package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/notecards/internal/api/shared"
	"github.com/phrazzld/notecards/internal/domain"
	"github.com/phrazzld/notecards/internal/platform/logger"
	"github.com/phrazzld/notecards/internal/store"
)

// FlashcardHandler handles flashcard persistence and retrieval requests.
type FlashcardHandler struct {
	store  store.FlashcardStore
	logger *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(flashcards store.FlashcardStore, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardHandler{
		store:  flashcards,
		logger: logger.With(slog.String("component", "flashcard_handler")),
	}
}

// ListFlashcards handles GET /api/flashcards. Cards are returned newest first.
func (h *FlashcardHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.store.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load flashcards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// CreateFlashcard handles POST /api/flashcards.
func (h *FlashcardHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateFlashcardRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := domain.NewFlashcard(domain.FlashcardDraft{Question: req.Question, Answer: req.Answer})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.store.Create(r.Context(), card); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("flashcard saved", slog.String("flashcard_id", card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, CreateFlashcardResponse{OK: true, ID: card.ID.String()})
}
