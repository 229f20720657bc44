package domain

import (
	"errors"
	"fmt"
)

// Error kinds (no external dependencies). Every error that reaches a caller wraps exactly one.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrMalformed       = errors.New("malformed credentials")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict with current state")
	ErrNotFound        = errors.New("resource not found")
	ErrInternal        = errors.New("internal error")
)

// Error pairs a kind with a user-facing message.
// errors.Is(err, domain.ErrConflict) holds for an *Error of that kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds an *Error of the given kind.
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind wrapped by err, or ErrInternal when err carries none.
func KindOf(err error) error {
	for _, k := range []error{
		ErrInvalidInput, ErrInvalidDuration, ErrUnauthenticated, ErrMalformed,
		ErrForbidden, ErrConflict, ErrNotFound,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// MessageOf returns the user-facing message of err. Uncategorized errors never leak their text.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	if k := KindOf(err); k != ErrInternal {
		return k.Error()
	}
	return "Something went wrong"
}
