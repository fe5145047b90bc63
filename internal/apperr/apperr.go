// Package apperr classifies failures so the HTTP layer can map them to
// status codes without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the failure category of an Error.
type Kind int

const (
	// KindValidation means the caller supplied missing or malformed input.
	KindValidation Kind = iota + 1
	// KindNotFound means no matching row exists, or the row belongs to
	// another owner.
	KindNotFound
	// KindStorage means the database or blob store failed.
	KindStorage
	// KindUpstream means the inference endpoint returned a non-success
	// response or was unreachable.
	KindUpstream
	// KindParse means the inference reply could not be decoded into the
	// expected structure.
	KindParse
)

// Error carries a failure kind, the operation that produced it, and a
// caller-safe message.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a KindValidation error.
func Validation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// NotFound builds a KindNotFound error.
func NotFound(op, message string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

// Storage wraps a database or blob-store failure.
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Op: op, Message: "storage error", Err: err}
}

// Upstream wraps an inference-endpoint failure. The message echoes the
// upstream response body since that detail is useful to the caller.
func Upstream(op, message string, err error) *Error {
	return &Error{Kind: KindUpstream, Op: op, Message: message, Err: err}
}

// Parse wraps a model-reply decoding failure.
func Parse(op string, err error) *Error {
	return &Error{Kind: KindParse, Op: op, Message: "could not parse model reply", Err: err}
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HTTPStatus maps an error to the response status code: 400 for validation,
// 404 for not found, 500 for everything else.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// SafeMessage returns the caller-facing message for err. Unclassified errors
// collapse to a generic message so internal detail never leaks.
func SafeMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Server error occurred"
}
