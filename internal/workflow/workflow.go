package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/notecards/internal/domain"
)

// Generator turns raw notes into flashcard drafts.
type Generator interface {
	GenerateFlashcards(ctx context.Context, notes string) ([]domain.FlashcardDraft, error)
}

// Persister stores a single draft. Only success or failure is observed.
type Persister interface {
	SaveFlashcard(ctx context.Context, draft domain.FlashcardDraft) error
}

// Retriever fetches the full current set of stored flashcards.
type Retriever interface {
	ListFlashcards(ctx context.Context) ([]domain.Flashcard, error)
}

// PersistOutcome is the result of storing one draft.
type PersistOutcome struct {
	Index   int
	Draft   domain.FlashcardDraft
	Warning *PersistWarning
}

// Persisted reports whether the draft was stored.
func (o PersistOutcome) Persisted() bool {
	return o.Warning == nil
}

// Result is the outcome of a successful workflow run.
type Result struct {
	// Records is the set returned by the retrieval collaborator, verbatim.
	// It may include records from earlier runs and omit drafts that failed
	// to persist.
	Records []domain.Flashcard

	// Outcomes has one entry per generated draft, in generation order.
	Outcomes []PersistOutcome
}

// Warnings returns the persist failures in draft order.
func (r *Result) Warnings() []PersistWarning {
	var warnings []PersistWarning
	for _, o := range r.Outcomes {
		if o.Warning != nil {
			warnings = append(warnings, *o.Warning)
		}
	}
	return warnings
}

// Option configures a FlashcardWorkflow.
type Option func(*FlashcardWorkflow)

// WithLogger sets the logger used for persist warnings and progress.
func WithLogger(logger *slog.Logger) Option {
	return func(w *FlashcardWorkflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithCallTimeout bounds every collaborator call (generate, each persist,
// retrieve) by the same timeout. Zero disables it.
func WithCallTimeout(d time.Duration) Option {
	return func(w *FlashcardWorkflow) {
		w.callTimeout = d
	}
}

// FlashcardWorkflow orchestrates generate, persist and reload.
type FlashcardWorkflow struct {
	generator   Generator
	persister   Persister
	retriever   Retriever
	logger      *slog.Logger
	callTimeout time.Duration
}

// New creates a FlashcardWorkflow. All three collaborators are required.
func New(generator Generator, persister Persister, retriever Retriever, opts ...Option) (*FlashcardWorkflow, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if persister == nil {
		return nil, errors.New("persister cannot be nil")
	}
	if retriever == nil {
		return nil, errors.New("retriever cannot be nil")
	}

	w := &FlashcardWorkflow{
		generator: generator,
		persister: persister,
		retriever: retriever,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(slog.String("component", "flashcard_workflow"))

	return w, nil
}

// GenerateAndPersist generates drafts from notes, stores each draft in order,
// and returns the full stored set as re-read from the retrieval collaborator.
//
// ErrEmptyNotes, ErrGeneration and ErrRetrieval abort the run and are the sole
// result. Persist failures never abort; they are reported in Result.Outcomes.
func (w *FlashcardWorkflow) GenerateAndPersist(ctx context.Context, notes string) (*Result, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrEmptyNotes
	}

	drafts, err := w.generate(ctx, notes)
	if err != nil {
		w.logger.ErrorContext(ctx, "flashcard generation failed", slog.String("error", err.Error()))
		return nil, &Error{Kind: ErrGeneration, Err: err}
	}

	w.logger.DebugContext(ctx, "flashcards generated", slog.Int("draft_count", len(drafts)))

	outcomes := make([]PersistOutcome, 0, len(drafts))
	for i, draft := range drafts {
		outcome := PersistOutcome{Index: i, Draft: draft}
		if err := w.persist(ctx, draft); err != nil {
			outcome.Warning = newPersistWarning(i, err)
			w.logger.WarnContext(ctx, "failed to save flashcard",
				slog.Int("index", i),
				slog.Int("status_code", outcome.Warning.StatusCode),
				slog.String("error", err.Error()))
		}
		outcomes = append(outcomes, outcome)
	}

	records, err := w.retrieve(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "flashcard retrieval failed", slog.String("error", err.Error()))
		return nil, &Error{Kind: ErrRetrieval, Err: err}
	}

	result := &Result{Records: records, Outcomes: outcomes}
	w.logger.InfoContext(ctx, "flashcard workflow completed",
		slog.Int("generated", len(drafts)),
		slog.Int("persist_failures", len(result.Warnings())),
		slog.Int("records", len(records)))

	return result, nil
}

func (w *FlashcardWorkflow) generate(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
	ctx, cancel := w.callContext(ctx)
	defer cancel()
	return w.generator.GenerateFlashcards(ctx, notes)
}

func (w *FlashcardWorkflow) persist(ctx context.Context, draft domain.FlashcardDraft) error {
	ctx, cancel := w.callContext(ctx)
	defer cancel()
	return w.persister.SaveFlashcard(ctx, draft)
}

func (w *FlashcardWorkflow) retrieve(ctx context.Context) ([]domain.Flashcard, error) {
	ctx, cancel := w.callContext(ctx)
	defer cancel()
	return w.retriever.ListFlashcards(ctx)
}

func (w *FlashcardWorkflow) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, w.callTimeout)
}
