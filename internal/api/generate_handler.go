package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/notecards/internal/api/shared"
	"github.com/phrazzld/notecards/internal/domain"
	"github.com/phrazzld/notecards/internal/generation"
	"github.com/phrazzld/notecards/internal/platform/logger"
)

// GenerateHandler turns notes into flashcard drafts. Drafts are not saved.
type GenerateHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(generator generation.Generator, logger *slog.Logger) *GenerateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateHandler{
		generator: generator,
		logger:    logger.With(slog.String("component", "generate_handler")),
	}
}

// Generate handles POST /api/generate.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if strings.TrimSpace(req.Notes) == "" {
		HandleAPIError(w, r, generation.ErrEmptyNotes, "")
		return
	}

	drafts, err := h.generator.GenerateDrafts(r.Context(), req.Notes)
	if err != nil {
		// Provider failures are reported as 500 with a short error string.
		status := http.StatusInternalServerError
		if errors.Is(err, generation.ErrEmptyNotes) {
			status = http.StatusBadRequest
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}
	if drafts == nil {
		drafts = []domain.FlashcardDraft{}
	}

	log.Info("flashcards generated", slog.Int("card_count", len(drafts)))
	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{Flashcards: drafts})
}
