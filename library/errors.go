package library

import (
	"errors"
	"fmt"
)

// Sentinel errors for store and directory operations.
var (
	ErrNotFound           = errors.New("book not found")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError reports a rejected input field. It is recovered
// locally by the shells: re-prompt in the console, re-render in the web
// UI.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
