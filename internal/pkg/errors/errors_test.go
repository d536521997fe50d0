package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WrapKeepsIdentity(t *testing.T) {
	cause := fmt.Errorf("insert precios: %w", stderrors.New("connection reset"))

	err := ErrDatabaseError.Wrap(cause).WithDetails(map[string]interface{}{"step": "prices"})

	assert.True(t, stderrors.Is(err, ErrDatabaseError))
	assert.False(t, stderrors.Is(err, ErrReferenceInUse))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "prices", err.Details["step"])
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.Contains(t, err.Error(), "connection reset")

	// эталон каталога не изменился
	assert.Empty(t, ErrDatabaseError.Details)
	assert.Nil(t, ErrDatabaseError.Unwrap())
}

func TestAppError_WithMessage(t *testing.T) {
	err := ErrNotFound.WithMessage("Airline not found")

	assert.Equal(t, "Airline not found", err.Message)
	assert.Equal(t, "Resource not found", ErrNotFound.Message)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "NOT_FOUND: Airline not found", err.Error())
}
