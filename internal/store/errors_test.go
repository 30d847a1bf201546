package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     *StoreError
		wantMsg string
	}{
		{
			name:    "with wrapped error",
			err:     NewStoreError("flashcard", "create", "insert failed", ErrInvalidEntity),
			wantMsg: "create operation on flashcard failed: insert failed: invalid entity",
		},
		{
			name:    "without wrapped error",
			err:     NewStoreError("payment", "create", "no rows", nil),
			wantMsg: "create operation on payment failed: no rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestStoreError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("handler: %w", NewStoreError("flashcard", "list", "query failed", ErrInternal))

	assert.True(t, errors.Is(err, ErrInternal))
	assert.False(t, errors.Is(err, ErrNotFound))

	var storeErr *StoreError
	if assert.True(t, errors.As(err, &storeErr)) {
		assert.Equal(t, "flashcard", storeErr.Entity)
		assert.Equal(t, "list", storeErr.Operation)
	}
}
