// internal/app/system/apierr/apierr.go

// Package apierr defines the error taxonomy for the REST API and the
// single place where service/store errors become HTTP responses.
//
// Four kinds cover every failure the API can surface:
//   - Validation: malformed, missing, or duplicate fields -> 400
//   - NotFound:   unknown id or dangling reference -> 404
//   - Auth:       bad credentials, expired/invalid token -> 401
//   - Storage:    underlying persistence failure -> 500
//
// Errors are never swallowed and never retried; handlers log them and
// write the message verbatim as {"message": "..."} so clients can show
// it directly.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind classifies an API error.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindAuth
	KindStorage
)

// Error is a classified API error. Wrap an underlying cause with the
// constructors below; Unwrap keeps errors.Is/As working through it.
type Error struct {
	Kind    Kind
	Message string
	Err     error // optional underlying cause
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a 400-class error.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound returns a 404-class error.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Auth returns a 401-class error.
func Auth(msg string) error {
	return &Error{Kind: KindAuth, Message: msg}
}

// Storage wraps a persistence failure as a 500-class error. The original
// error stays attached for logging but the client sees a stable message.
func Storage(err error) error {
	return &Error{Kind: KindStorage, Message: "storage failure", Err: err}
}

// KindOf returns the kind of err, or KindStorage for unclassified errors
// so that unknown failures always surface as 500.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}

// Is reports whether err is an API error of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// StatusOf maps an error to its HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Write renders err as the standard JSON error body with the mapped
// status code.
func Write(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusOf(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}
