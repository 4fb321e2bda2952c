// Package apierror defines the single error taxonomy used by all services
// and the envelope returned to clients. Services never push raw gorm or
// infrastructure errors upward; handlers map each Kind to an HTTP status at
// one boundary and the internal cause is only ever logged server-side.
package apierror

import "fmt"

// Kind classifies a service error for HTTP mapping.
type Kind int

const (
	KindValidation Kind = iota // bad input → 400
	KindNotFound               // entity absent → 404
	KindConflict               // illegal state transition → 409
	KindInternal               // infrastructure / unexpected → 500
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a user-facing Spanish message plus the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

// Internal hides the cause behind a generic message; the cause stays
// available for logging via Unwrap.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Error interno del servidor", cause: cause}
}

// From returns err as *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return Internal(err)
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
