package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for translation at the HTTP boundary.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindRateLimited  Kind = "rate_limited"
	KindUnexpected   Kind = "unexpected"
)

// Machine-readable codes written into the error envelope.
const (
	CodeInvalidURL    = "INVALID_URL"
	CodeLinkNotFound  = "LINK_NOT_FOUND"
	CodeRouteNotFound = "ROUTE_NOT_FOUND"
	CodeInternal      = "INTERNAL_ERROR"
)

const unexpectedMessage = "An unexpected error occurred"

// Error is a domain error carrying the status and code it maps to.
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Status: http.StatusBadRequest, Code: CodeInvalidURL, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Code: CodeLinkNotFound, Message: message}
}

func RouteNotFound() *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Code: CodeRouteNotFound, Message: "Route not found"}
}

// RateLimited uses the denying policy's own message and code.
func RateLimited(message, code string) *Error {
	return &Error{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Code: code, Message: message}
}

// Unexpected wraps err behind a generic message; the cause is kept for logs only.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Status: http.StatusInternalServerError, Code: CodeInternal, Message: unexpectedMessage, Err: err}
}

// From returns err as an *Error, treating anything unknown as Unexpected.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unexpected(err)
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
