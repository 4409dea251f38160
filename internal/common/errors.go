// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Gateway errors.
	ErrNotFound     = errors.New("not found")
	ErrInvalidRange = errors.New("invalid date range")

	// Classification errors.
	ErrMalformedTransaction   = errors.New("malformed transaction")
	ErrUnclassifiableAccounts = errors.New("unclassifiable account pair")

	// Schedule errors.
	ErrUnsupportedRecurrence = errors.New("unsupported recurrence")
	ErrUnsupportedFormula    = errors.New("unsupported schedule formula")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
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

// IsConfigError reports whether an error is a configuration-level failure
// rather than bad ledger data.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingConfig) || errors.Is(err, ErrInvalidConfig)
}
