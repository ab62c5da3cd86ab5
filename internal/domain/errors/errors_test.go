package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"not found", ErrNotFound("article"), IsNotFound},
		{"forbidden", ErrForbidden("nope"), IsForbidden},
		{"conflict", ErrConflict(ErrCodeInvalidTransition, "bad state"), IsConflict},
		{"validation", ErrValidation(ErrCodeDuplicateSlug, "slug", "taken"), IsValidation},
		{"wrapped validation", fmt.Errorf("create: %w", ErrValidation(ErrCodeInvalidTitle, "title", "empty")), IsValidation},
		{"internal", ErrInternal("db down", stderrors.New("dial tcp")), IsInternal},
		{"plain error is internal", stderrors.New("boom"), IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.is(tt.err))
		})
	}

	assert.False(t, IsNotFound(ErrForbidden("x")))
	assert.False(t, IsInternal(nil))
}

func TestAsAppError(t *testing.T) {
	cause := stderrors.New("connection refused")
	appErr := AsAppError(cause)

	assert.Equal(t, ErrCodeInternalError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.ErrorIs(t, appErr, cause)
	assert.Nil(t, AsAppError(nil))

	v := ErrValidation(ErrCodeDuplicateSlug, "slug", "slug already exists")
	assert.Same(t, v, AsAppError(v))
	assert.Equal(t, "[DUPLICATE_SLUG] slug already exists (field: slug)", v.Error())
}
