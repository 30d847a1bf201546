package workflow

import (
	"errors"
	"fmt"

	"github.com/phrazzld/notecards/internal/domain"
)

// Aborting error kinds. Use errors.Is to classify an error returned by
// GenerateAndPersist.
var (
	// ErrEmptyNotes is returned when the notes are empty. No collaborator is called.
	ErrEmptyNotes = fmt.Errorf("%w: notes cannot be empty", domain.ErrValidation)

	// ErrGeneration marks any failure of the generation call.
	ErrGeneration = errors.New("flashcard generation failed")

	// ErrRetrieval marks any failure of the final retrieval call.
	ErrRetrieval = errors.New("flashcard retrieval failed")
)

// Error is an aborting workflow failure. Kind is ErrGeneration or ErrRetrieval;
// Err is the collaborator's error.
type Error struct {
	Kind error
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// PersistWarning records a draft that could not be stored. It is collected,
// never returned as the workflow's error.
type PersistWarning struct {
	// Index is the zero-based position of the draft in the generated sequence.
	Index int
	// StatusCode is the collaborator's HTTP status, or 0 when no response was received.
	StatusCode int
	Err        error
}

// Error implements the error interface so a warning can be logged or wrapped.
func (w PersistWarning) Error() string {
	if w.StatusCode != 0 {
		return fmt.Sprintf("persist draft %d: status %d: %v", w.Index, w.StatusCode, w.Err)
	}
	return fmt.Sprintf("persist draft %d: %v", w.Index, w.Err)
}

// Unwrap returns the underlying collaborator error.
func (w PersistWarning) Unwrap() error {
	return w.Err
}

// statusCoder is implemented by collaborator errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

func newPersistWarning(index int, err error) *PersistWarning {
	w := &PersistWarning{Index: index, Err: err}
	var sc statusCoder
	if errors.As(err, &sc) {
		w.StatusCode = sc.StatusCode()
	}
	return w
}
