// Package fault defines the typed error taxonomy returned by the booking core.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure.
type Kind string

const (
	// KindValidation marks malformed input (bad time format, start >= end, rating out of range).
	KindValidation Kind = "validation"
	// KindConflict marks an invariant violation given otherwise-valid input
	// (overlap, daily cap exceeded, slot already booked, duplicate review).
	KindConflict Kind = "conflict"
	// KindNotFound marks a missing resource, or one owned by a different principal.
	KindNotFound Kind = "not_found"
	// KindState marks an operation invalid for the entity's current status.
	KindState Kind = "state"
	// KindDependency marks a side-effect failure (email, notification). Never
	// fatal to the operation that triggered it.
	KindDependency Kind = "dependency"
)

type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func New(kind Kind, format string, args ...any) error {
	return &Error{
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
	}
}

func Validation(format string, args ...any) error { return New(KindValidation, format, args...) }
func Conflict(format string, args ...any) error   { return New(KindConflict, format, args...) }
func NotFound(format string, args ...any) error   { return New(KindNotFound, format, args...) }
func State(format string, args ...any) error      { return New(KindState, format, args...) }
func Dependency(format string, args ...any) error { return New(KindDependency, format, args...) }

// KindOf returns the Kind of err, or "" if err is not a fault.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsState(err error) bool      { return KindOf(err) == KindState }
func IsDependency(err error) bool { return KindOf(err) == KindDependency }

// Reason returns the human-readable reason string of err, falling back to
// err.Error() for non-fault errors.
func Reason(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return err.Error()
}

// HTTPStatus maps a fault kind to the HTTP status handlers respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindState:
		return http.StatusUnprocessableEntity
	case KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
