// Package apperr carries the error taxonomy shared by the workflow
// services. Handlers map a Kind to an HTTP status in exactly one place
// (utils.RespondError) instead of picking codes per call site.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal      Kind = iota // unexpected failure, detail stays server-side
	Validation                // malformed or missing input, malformed ids
	Auth                      // missing/invalid/expired credential
	Forbidden                 // policy denial
	Conflict                  // state conflict: duplicate, terminal record
	NotFound                  // unresolvable id
	Unavailable               // zero inventory
	LimitExceeded             // package employee ceiling hit
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a caller-facing error of the given kind.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying cause for server-side logs while exposing
// only message to the caller.
func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind; anything that is not an *Error counts as
// Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Status maps a kind to the HTTP status the API responds with.
func Status(err error) int {
	switch KindOf(err) {
	case Validation, Unavailable:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case Forbidden, LimitExceeded:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is what the caller may see. Internal errors collapse to a
// generic message so store details never leak.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "Something went wrong"
}
