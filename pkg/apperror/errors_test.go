package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("loading report: %w", NewNotFoundError("Order"))
	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Order not found", appErr.Message)
	assert.True(t, IsAppError(wrapped))

	plain := GetAppError(errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "Internal server error", plain.Message)
	assert.False(t, IsAppError(errors.New("db down")))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusConflict, NewConflictError("busy").Code)
	assert.Equal(t, http.StatusBadRequest, NewBadRequestError("bad").Code)

	v := NewValidationError([]FieldError{{Field: "status", Message: "is invalid"}})
	assert.Equal(t, http.StatusUnprocessableEntity, v.Code)
	assert.Len(t, v.Errors, 1)
}
