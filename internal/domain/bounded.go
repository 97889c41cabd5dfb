package domain

import (
	"fmt"
	"unicode/utf8"
)

type TooLongError struct {
	Field string
	Max   int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("%s is too long. Must be at most %d characters.", e.Field, e.Max)
}

func AsTooLongError(err error) (*TooLongError, bool) {
	tooLong, ok := err.(*TooLongError)
	return tooLong, ok
}

func checkMaxChars(field, raw string, max int) error {
	if utf8.RuneCountInString(raw) > max {
		return &TooLongError{Field: field, Max: max}
	}
	return nil
}
