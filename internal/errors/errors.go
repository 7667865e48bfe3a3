package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Beta Tips client
var (
	// Authentication errors
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountDeactivated   = errors.New("account deactivated")
	ErrSessionExpired       = errors.New("session expired")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrNotAuthorized        = errors.New("not authorized")
	ErrWrongCurrentPassword = errors.New("current password incorrect")
	ErrPasswordMismatch     = errors.New("new passwords do not match")
	ErrPasswordTooShort     = errors.New("new password too short")

	// Token storage errors
	ErrNoToken = errors.New("no stored token")

	// Tips errors
	ErrUnknownCategory = errors.New("unknown category")
	ErrNavigationBound = errors.New("date beyond navigation bound")
	ErrSuperseded      = errors.New("request superseded")

	// Game errors
	ErrInvalidGame      = errors.New("invalid game")
	ErrInvalidResult    = errors.New("invalid result")
	ErrResultAlreadySet = errors.New("result already set")

	// Community errors
	ErrEmptyContent = errors.New("empty content")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
