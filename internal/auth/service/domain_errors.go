package service

import (
	"net/http"

	commonerrors "github.com/chatter-app/chatter/backend/internal/common/errors"
)

var (
	// ErrInvalidCredentials covers both an unknown handle and a password
	// mismatch. The two cases must stay indistinguishable to callers.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid username or password",
	)

	ErrUsernameTaken = commonerrors.NewDomainError(
		"USERNAME_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)
)

func newValidationError(message string) commonerrors.DomainError {
	return commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		message,
	)
}
