package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorResponse represents the error body returned by the backend.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Kind classifies every failure a caller can observe.
type Kind string

// Error kinds. The set is closed: callers switch on these values.
const (
	KindNetwork    Kind = "NETWORK"
	KindTimeout    Kind = "TIMEOUT"
	KindHTTP       Kind = "HTTP"
	KindValidation Kind = "VALIDATION"
)

// User-facing fallback messages.
const (
	MsgTimeout = "Request timeout - server may not be responding"
	MsgNetwork = "Network error. Please check your connection."
	MsgGeneric = "An error occurred"
)

// Error is the single error type surfaced by the API client and validators.
type Error struct {
	Kind    Kind
	Status  int               // HTTP status, KindHTTP only
	Message string            // safe to show to the user
	Fields  map[string]string // field -> message, KindValidation only
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return MsgGeneric
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewNetworkError wraps a connection-level failure.
func NewNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

// NewTimeoutError wraps a request that exceeded the client-side budget.
func NewTimeoutError(err error) *Error {
	return &Error{Kind: KindTimeout, Message: MsgTimeout, Err: err}
}

// NewHTTPError creates an error for a non-2xx response. An empty message
// falls back to "HTTP <status>".
func NewHTTPError(status int, message string) *Error {
	if strings.TrimSpace(message) == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &Error{Kind: KindHTTP, Status: status, Message: message}
}

// NewValidationError creates a local validation failure. The message lists
// every offending field in a stable order.
func NewValidationError(fields map[string]string) *Error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}

	return &Error{
		Kind:    KindValidation,
		Message: strings.Join(msgs, "; "),
		Fields:  fields,
	}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
