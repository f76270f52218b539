package errors

import (
	"errors"
	"fmt"
)

// Common error types for the front end
var (
	// Session errors
	ErrSessionExpired = errors.New("session expired")
	ErrNoRefreshToken = errors.New("no refresh token available")
	ErrNotAuthorized  = errors.New("not authorized")

	// Flow errors
	ErrInvalidTransition = errors.New("invalid flow transition")
	ErrResendTooSoon     = errors.New("verification code resend not yet allowed")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")

	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
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

// Join combines errors, see errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}
