package service

import (
	"fmt"
	"unicode/utf8"

	"github.com/chatter-app/chatter/backend/internal/common/constants"
	commonerrors "github.com/chatter-app/chatter/backend/internal/common/errors"
)

// validateRegisterInput enforces the bounds the HTTP layer also carries,
// so the service holds them even for non-HTTP callers.
func validateRegisterInput(input RegisterInput) commonerrors.DomainError {
	if utf8.RuneCountInString(input.Username) < constants.UsernameMinLength {
		return newValidationError("username is required")
	}
	if len(input.Password) < constants.PasswordMinLength {
		return newValidationError(fmt.Sprintf("password must be at least %d characters", constants.PasswordMinLength))
	}
	return nil
}
