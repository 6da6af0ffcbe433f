// Package apperrors defines the error kinds returned by the data, service and
// request layers and their mapping onto HTTP status codes.
package apperrors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBodyRead
	KindParse
	KindValidation
	KindDatabase
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBodyRead:
		return "body_read"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindDatabase:
		return "database"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Default client-facing messages.
const (
	MsgBodyRead       = "Failed to read request body"
	MsgInvalidRequest = "Invalid request format"
	MsgDatabase       = "Failed to execute database query"
	MsgInternal       = "Internal server error"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func BodyRead(err error) *Error {
	return Wrap(KindBodyRead, MsgBodyRead, err)
}

func Parse(err error) *Error {
	return Wrap(KindParse, MsgInvalidRequest, err)
}

func Validation(err error) *Error {
	return Wrap(KindValidation, MsgInvalidRequest, err)
}

func Database(err error) *Error {
	return Wrap(KindDatabase, MsgDatabase, err)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func (k Kind) StatusCode() int {
	switch k {
	case KindBodyRead, KindParse, KindValidation, KindDatabase:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// StatusCode maps err to the HTTP status and message sent to the client.
// Errors outside the taxonomy become 500 with a generic message.
func StatusCode(err error) (int, string) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindInternal {
		return http.StatusInternalServerError, MsgInternal
	}
	return appErr.Kind.StatusCode(), appErr.Message
}
