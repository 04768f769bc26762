package apiclient

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Kind classifies a failed call for the user-facing error taxonomy.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindTimeout
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindAlreadyProcessed
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAlreadyProcessed:
		return "already_processed"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

var defaultMessages = map[Kind]string{
	KindUnknown:          "Something went wrong. Please try again.",
	KindNetwork:          "Unable to reach the server. Please check your connection.",
	KindTimeout:          "Request timed out. Please try again.",
	KindValidation:       "Please correct the highlighted fields.",
	KindUnauthorized:     "Your session has expired. Please log in again.",
	KindForbidden:        "You do not have permission to perform this action.",
	KindNotFound:         "The requested resource was not found.",
	KindConflict:         "This request conflicts with an existing one.",
	KindAlreadyProcessed: "This review request has already been processed.",
	KindServer:           "Server error. Please try again later.",
}

// Error is the normalized failure of any backend call. Message is always
// suitable for showing to the user.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Fields     map[string]string
	Err        error

	sentinel bool
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind, so errors.Is(err, ErrConflict)
// holds for every conflict regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.sentinel {
		return false
	}
	return t.Kind == e.Kind
}

func sentinel(kind Kind) *Error {
	return &Error{Kind: kind, Message: defaultMessages[kind], sentinel: true}
}

var (
	ErrNetwork          = sentinel(KindNetwork)
	ErrTimeout          = sentinel(KindTimeout)
	ErrValidation       = sentinel(KindValidation)
	ErrUnauthorized     = sentinel(KindUnauthorized)
	ErrForbidden        = sentinel(KindForbidden)
	ErrNotFound         = sentinel(KindNotFound)
	ErrConflict         = sentinel(KindConflict)
	ErrAlreadyProcessed = sentinel(KindAlreadyProcessed)
	ErrServer           = sentinel(KindServer)
)

// NewError builds an Error, falling back to the kind's default message.
func NewError(kind Kind, message string) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}
	return &Error{Kind: kind, Message: message}
}

// NewValidationError reports local, field-level validation failures.
func NewValidationError(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, StatusCode: http.StatusBadRequest, Message: defaultMessages[KindValidation], Fields: fields}
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// StatusCodeOf returns the HTTP status behind err, or 0.
func StatusCodeOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

func transportError(err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Message: defaultMessages[KindTimeout], Err: err}
	}
	return &Error{Kind: KindNetwork, Message: defaultMessages[KindNetwork], Err: err}
}
