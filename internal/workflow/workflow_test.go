package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/notecards/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusErr mimics a transport error carrying an HTTP status.
type statusErr struct{ code int }

func (e *statusErr) Error() string   { return fmt.Sprintf("unexpected status %d", e.code) }
func (e *statusErr) StatusCode() int { return e.code }

// MockBackend is a test double for all three collaborators. It records every
// call in order so tests can assert sequencing.
type MockBackend struct {
	mu    sync.Mutex
	calls []string

	GenerateFn func(ctx context.Context, notes string) ([]domain.FlashcardDraft, error)
	SaveFn     func(ctx context.Context, draft domain.FlashcardDraft) error
	ListFn     func(ctx context.Context) ([]domain.Flashcard, error)
}

func (m *MockBackend) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// Calls returns the recorded call log.
func (m *MockBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// GenerateFlashcards implements Generator
func (m *MockBackend) GenerateFlashcards(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
	m.record("generate")
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, notes)
	}
	return nil, nil
}

// SaveFlashcard implements Persister
func (m *MockBackend) SaveFlashcard(ctx context.Context, draft domain.FlashcardDraft) error {
	m.record("save:" + draft.Question)
	if m.SaveFn != nil {
		return m.SaveFn(ctx, draft)
	}
	return nil
}

// ListFlashcards implements Retriever
func (m *MockBackend) ListFlashcards(ctx context.Context) ([]domain.Flashcard, error) {
	m.record("list")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func newTestWorkflow(t *testing.T, backend *MockBackend, opts ...Option) *FlashcardWorkflow {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w, err := New(backend, backend, backend, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return w
}

func drafts(n int) []domain.FlashcardDraft {
	out := make([]domain.FlashcardDraft, n)
	for i := range out {
		out[i] = domain.FlashcardDraft{Question: fmt.Sprintf("q%d", i+1), Answer: fmt.Sprintf("a%d", i+1)}
	}
	return out
}

func TestNew_RequiresCollaborators(t *testing.T) {
	t.Parallel()

	backend := &MockBackend{}

	_, err := New(nil, backend, backend)
	assert.Error(t, err)
	_, err = New(backend, nil, backend)
	assert.Error(t, err)
	_, err = New(backend, backend, nil)
	assert.Error(t, err)
}

func TestGenerateAndPersist_EmptyNotes(t *testing.T) {
	t.Parallel()

	for _, notes := range []string{"", "   ", "\n\t"} {
		backend := &MockBackend{}
		w := newTestWorkflow(t, backend)

		result, err := w.GenerateAndPersist(context.Background(), notes)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrEmptyNotes)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, backend.Calls(), "no collaborator should be called for empty notes")
	}
}

func TestGenerateAndPersist_AllPersisted(t *testing.T) {
	t.Parallel()

	generated := drafts(3)
	stored := []domain.Flashcard{{ID: uuid.New(), Question: "q1", Answer: "a1"}}
	backend := &MockBackend{
		GenerateFn: func(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
			return generated, nil
		},
		ListFn: func(ctx context.Context) ([]domain.Flashcard, error) {
			return stored, nil
		},
	}
	w := newTestWorkflow(t, backend)

	result, err := w.GenerateAndPersist(context.Background(), "some notes")
	require.NoError(t, err)

	assert.Equal(t, []string{"generate", "save:q1", "save:q2", "save:q3", "list"}, backend.Calls(),
		"retrieval should run exactly once, after all persists")
	assert.Equal(t, stored, result.Records, "records should come from retrieval, not drafts")
	require.Len(t, result.Outcomes, 3)
	for i, o := range result.Outcomes {
		assert.Equal(t, i, o.Index)
		assert.Equal(t, generated[i], o.Draft)
		assert.True(t, o.Persisted())
	}
	assert.Empty(t, result.Warnings())
}

func TestGenerateAndPersist_PersistFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	backend := &MockBackend{
		GenerateFn: func(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
			return drafts(4), nil
		},
		SaveFn: func(ctx context.Context, draft domain.FlashcardDraft) error {
			switch draft.Question {
			case "q2":
				return &statusErr{code: 500}
			case "q3":
				return errors.New("connection reset")
			}
			return nil
		},
	}
	w := newTestWorkflow(t, backend)

	result, err := w.GenerateAndPersist(context.Background(), "notes")
	require.NoError(t, err)

	assert.Equal(t, []string{"generate", "save:q1", "save:q2", "save:q3", "save:q4", "list"}, backend.Calls())

	warnings := result.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, 1, warnings[0].Index)
	assert.Equal(t, 500, warnings[0].StatusCode)
	assert.Equal(t, 2, warnings[1].Index)
	assert.Equal(t, 0, warnings[1].StatusCode)
	assert.EqualError(t, warnings[1].Unwrap(), "connection reset")

	assert.True(t, result.Outcomes[0].Persisted())
	assert.False(t, result.Outcomes[1].Persisted())
	assert.False(t, result.Outcomes[2].Persisted())
	assert.True(t, result.Outcomes[3].Persisted())
}

func TestGenerateAndPersist_EmptyGeneration(t *testing.T) {
	t.Parallel()

	backend := &MockBackend{
		GenerateFn: func(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
			return []domain.FlashcardDraft{}, nil
		},
	}
	w := newTestWorkflow(t, backend)

	result, err := w.GenerateAndPersist(context.Background(), "notes")
	require.NoError(t, err)

	assert.Equal(t, []string{"generate", "list"}, backend.Calls())
	assert.Empty(t, result.Outcomes)
	assert.Empty(t, result.Records)
}

func TestGenerateAndPersist_GenerationFailure(t *testing.T) {
	t.Parallel()

	cause := &statusErr{code: 502}
	backend := &MockBackend{
		GenerateFn: func(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
			return nil, cause
		},
	}
	w := newTestWorkflow(t, backend)

	result, err := w.GenerateAndPersist(context.Background(), "notes")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrRetrieval)
	assert.Equal(t, []string{"generate"}, backend.Calls(), "persist and retrieve must not run")
}

func TestGenerateAndPersist_RetrievalFailure(t *testing.T) {
	t.Parallel()

	backend := &MockBackend{
		GenerateFn: func(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
			return drafts(2), nil
		},
		ListFn: func(ctx context.Context) ([]domain.Flashcard, error) {
			return nil, errors.New("server error")
		},
	}
	w := newTestWorkflow(t, backend)

	result, err := w.GenerateAndPersist(context.Background(), "notes")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrRetrieval)

	var wfErr *Error
	require.ErrorAs(t, err, &wfErr)
	assert.EqualError(t, wfErr.Err, "server error")
	assert.Equal(t, []string{"generate", "save:q1", "save:q2", "list"}, backend.Calls())
}

func TestGenerateAndPersist_MitochondriaScenario(t *testing.T) {
	t.Parallel()

	notes := "The mitochondria is the powerhouse of the cell."
	draft := domain.FlashcardDraft{
		Question: "What is the powerhouse of the cell?",
		Answer:   "The mitochondria",
	}
	record := domain.Flashcard{
		ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Question:  draft.Question,
		Answer:    draft.Answer,
		CreatedAt: time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC),
	}

	var saved []domain.FlashcardDraft
	backend := &MockBackend{
		GenerateFn: func(ctx context.Context, got string) ([]domain.FlashcardDraft, error) {
			assert.Equal(t, notes, got)
			return []domain.FlashcardDraft{draft}, nil
		},
		SaveFn: func(ctx context.Context, d domain.FlashcardDraft) error {
			saved = append(saved, d)
			return nil
		},
		ListFn: func(ctx context.Context) ([]domain.Flashcard, error) {
			return []domain.Flashcard{record}, nil
		},
	}
	w := newTestWorkflow(t, backend)

	result, err := w.GenerateAndPersist(context.Background(), notes)
	require.NoError(t, err)

	assert.Equal(t, []domain.FlashcardDraft{draft}, saved)
	assert.Equal(t, []domain.Flashcard{record}, result.Records)
}

func TestGenerateAndPersist_CallTimeoutAppliesToEveryCall(t *testing.T) {
	t.Parallel()

	var deadlines int
	check := func(ctx context.Context) {
		if _, ok := ctx.Deadline(); ok {
			deadlines++
		}
	}
	backend := &MockBackend{
		GenerateFn: func(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
			check(ctx)
			return drafts(2), nil
		},
		SaveFn: func(ctx context.Context, draft domain.FlashcardDraft) error {
			check(ctx)
			return nil
		},
		ListFn: func(ctx context.Context) ([]domain.Flashcard, error) {
			check(ctx)
			return nil, nil
		},
	}
	w := newTestWorkflow(t, backend, WithCallTimeout(time.Second))

	_, err := w.GenerateAndPersist(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, 4, deadlines, "generate, two persists and retrieve should all carry a deadline")
}

func TestGenerateAndPersist_CancelledContextKeepsPartialFailurePolicy(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	backend := &MockBackend{
		GenerateFn: func(ctx context.Context, notes string) ([]domain.FlashcardDraft, error) {
			return drafts(2), nil
		},
		SaveFn: func(c context.Context, draft domain.FlashcardDraft) error {
			cancel()
			return c.Err()
		},
		ListFn: func(c context.Context) ([]domain.Flashcard, error) {
			return nil, c.Err()
		},
	}
	w := newTestWorkflow(t, backend)

	_, err := w.GenerateAndPersist(ctx, "notes")

	assert.ErrorIs(t, err, ErrRetrieval)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"generate", "save:q1", "save:q2", "list"}, backend.Calls(),
		"every draft is still attempted after cancellation")
}

func TestPersistWarning_Error(t *testing.T) {
	t.Parallel()

	w := PersistWarning{Index: 2, StatusCode: 500, Err: errors.New("boom")}
	assert.Equal(t, "persist draft 2: status 500: boom", w.Error())

	w = PersistWarning{Index: 0, Err: errors.New("boom")}
	assert.Equal(t, "persist draft 0: boom", w.Error())
}
