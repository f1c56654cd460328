package errors

import (
	"net/http"
	"testing"

	"github.com/gvr1220/user-management/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsStillMatches(t *testing.T) {
	err := ErrValidationFailed.WithDetails("email: must be a valid email")

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrDuplicateEmail))
	assert.Equal(t, "input validation failed: email: must be a valid email", err.Error())
	assert.Equal(t, "email: must be a valid email", err.Details())
}

func TestBaseError_WrapMessage(t *testing.T) {
	err := ErrUserNotFound.WrapMessage("load user")

	assert.True(t, errors.Is(err, ErrUserNotFound))

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "USER_NOT_FOUND", appErr.ErrorCode())
}

func TestDatabaseExecuteError_IsStoreFailure(t *testing.T) {
	cause := errors.New("connection reset")
	err := errors.Wrap(NewDatabaseExecuteError(cause, "update users"), "unlock")

	assert.True(t, errors.Is(err, ErrStoreFailure))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrInternalError))

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	assert.Equal(t, "update users", appErr.Details())
}
