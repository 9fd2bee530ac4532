package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the transport boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindDependency:
		return "dependency"
	default:
		return "internal"
	}
}

// Error is the error type returned by application services.
// Message is safe to show to clients; Err is kept for logging only.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) *Error { return newError(KindValidation, msg, nil) }

// ValidationWithDetails carries per-field messages from request binding.
func ValidationWithDetails(msg string, details any) *Error {
	e := newError(KindValidation, msg, nil)
	e.Details = details
	return e
}

func Unauthenticated(msg string) *Error { return newError(KindAuthentication, msg, nil) }

func Forbidden(msg string) *Error { return newError(KindAuthorization, msg, nil) }

func NotFound(msg string) *Error { return newError(KindNotFound, msg, nil) }

func Dependency(msg string, err error) *Error { return newError(KindDependency, msg, err) }

func Internal(err error) *Error { return newError(KindInternal, "internal server error", err) }

// Wrap attaches a kind and client message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error { return newError(kind, msg, err) }

// KindOf reports the kind of err; errors not created by this package are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
