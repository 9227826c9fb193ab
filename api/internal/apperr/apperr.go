package apperr

import (
	"errors"
	"net/http"
)

// Code classifies a failure independently of the transport.
type Code string

const (
	CodeNotAPalm           Code = "not_a_palm"
	CodeWrongHand          Code = "wrong_hand"
	CodeBadRequest         Code = "bad_request"
	CodeMethodNotAllowed   Code = "method_not_allowed"
	CodeBadUpstreamFormat  Code = "bad_upstream_format"
	CodeUpstreamFailure    Code = "upstream_failure"
	CodePersistenceFailure Code = "persistence_failure"
	CodeSendFailure        Code = "send_failure"
	CodeInternal           Code = "internal_error"
)

// Error carries a stable code, an optional user-facing message and the cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors by code so errors.Is(err, &Error{Code: c}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap keeps an existing code if err already carries one.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// IsRejection reports whether err is a user-correctable outcome rather than a system failure.
func IsRejection(err error) bool {
	switch CodeOf(err) {
	case CodeNotAPalm, CodeWrongHand, CodeBadRequest:
		return true
	}
	return false
}

func HTTPStatus(code Code) int {
	switch code {
	case CodeNotAPalm, CodeWrongHand, CodeBadRequest:
		return http.StatusBadRequest
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be shown to the client.
// Only rejections expose their own message; everything else gets fallback.
func PublicMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && IsRejection(err) && e.Message != "" {
		return e.Message
	}
	return fallback
}
