// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrNotFound reports an operation targeting an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation reports malformed or missing required fields on write.
	ErrValidation = errors.New("validation failed")
	// ErrDefaultEntity reports an attempt to delete a default category or account.
	ErrDefaultEntity = errors.New("default entity cannot be deleted")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
