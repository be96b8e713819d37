// Package errors carries a coded error type shared by every layer
//
// Import it as perr so it never shadows the standard errors package
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure for callers and the wire
// values are serialized, append new codes at the end
type ErrorCode uint16

// Error codes
const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeConflict
	ErrorCodeUnauthorized
	ErrorCodeForbidden
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodeFailedPrecondition
)

type codeInfo struct {
	name   string
	status int
}

var codes = map[ErrorCode]codeInfo{
	ErrorCodeUnknown:            {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:              {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:        {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests:    {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeConflict:           {"conflict", http.StatusConflict},
	ErrorCodeUnauthorized:       {"unauthorized", http.StatusUnauthorized},
	ErrorCodeForbidden:          {"forbidden", http.StatusForbidden},
	ErrorCodeInvalidArgument:    {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:         {"validation", http.StatusBadRequest},
	ErrorCodeJSON:               {"json", http.StatusBadRequest},
	ErrorCodeNotFound:           {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:       {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:                 {"db", http.StatusInternalServerError},
	ErrorCodeFailedPrecondition: {"failed_precondition", http.StatusPreconditionFailed},
}

// String returns the snake case name of c
func (c ErrorCode) String() string {
	if ci, ok := codes[c]; ok {
		return ci.name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatusCode maps c to a response status, unknown codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if ci, ok := codes[c]; ok {
		return ci.status
	}
	return http.StatusInternalServerError
}

// ErrNotFound is returned by key lookups that miss
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is a coded error with an optional cause and offending field
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

// Wire is the error payload written into response envelopes
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause == nil:
		return e.msg
	default:
		return e.msg + ": " + e.cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field names the input the error refers to, if any
func (e *Error) Field() string { return e.field }

// As reports whether err wraps an *Error and returns the outermost one
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns the code of err, or ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is HTTPStatusCode(CodeOf(err))
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WireFrom builds the response payload for err; the cause text is not exposed
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	e, ok := As(err)
	if !ok {
		return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
	}
	return Wire{Code: e.code, Message: e.msg, Field: e.field}
}

// Root follows Unwrap to the innermost error
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// WithField returns a copy of err tagged with field
// foreign errors are returned unchanged
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	cp := *e
	cp.field = field
	return &cp
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a format string
func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap attaches code and msg to cause
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Wrapf is Wrap with a format string
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

// NotFoundf returns an ErrorCodeNotFound error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf returns an ErrorCodeInvalidArgument error
func InvalidArgf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidArgument, format, a...)
}

// JSONErrf returns an ErrorCodeJSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns an ErrorCodePanic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf returns an ErrorCodeUnauthorized error
func Unauthorizedf(format string, a ...any) error {
	return Newf(ErrorCodeUnauthorized, format, a...)
}

// Unavailablef returns an ErrorCodeUnavailable error
func Unavailablef(format string, a ...any) error {
	return Newf(ErrorCodeUnavailable, format, a...)
}

// TooManyRequestsf returns an ErrorCodeTooManyRequests error
func TooManyRequestsf(format string, a ...any) error {
	return Newf(ErrorCodeTooManyRequests, format, a...)
}

// FailedPreconditionf returns an ErrorCodeFailedPrecondition error
func FailedPreconditionf(format string, a ...any) error {
	return Newf(ErrorCodeFailedPrecondition, format, a...)
}
