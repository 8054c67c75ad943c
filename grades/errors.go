package grades

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates the ways an update can fail. Every kind is terminal for the invocation.
type Kind int

const (
	ConfigMissing Kind = iota + 1
	AuthFailure
	GatewayFailure
	SchemaPrecondition
	DecodeFailure
)

func (k Kind) String() string {
	switch k {
	case ConfigMissing:
		return "missing configuration"
	case AuthFailure:
		return "authentication failure"
	case GatewayFailure:
		return "spreadsheet request failed"
	case SchemaPrecondition:
		return "invalid worksheet"
	case DecodeFailure:
		return "invalid test results"
	default:
		return fmt.Sprintf("unknown error kind (%d)", int(k))
	}
}

// Error is the error type returned by the gradebook packages. Status and Body hold the HTTP
// status code and response body for AuthFailure and GatewayFailure errors, where available.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Body    string
	Err     error
}

func (e *Error) Error() string {
	s := e.Kind.String()

	if e.Message != "" {
		s += ": " + e.Message
	}

	if e.Status != 0 {
		s += fmt.Sprintf(" [%v]", e.Status)
	}

	switch {
	case e.Err != nil:
		s += fmt.Sprintf(" (%v)", e.Err)

	case e.Body != "":
		s += fmt.Sprintf(" (%v)", e.Body)
	}

	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable returns true for gateway failures that might succeed if the whole invocation is
// retried i.e. network errors, rate limiting and server errors.
func (e *Error) Retryable() bool {
	if e.Kind != GatewayFailure {
		return false
	}

	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// KindOf returns the Kind of the first *Error in the error chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}

	return 0, false
}

func precondition(format string, args ...any) error {
	return &Error{
		Kind:    SchemaPrecondition,
		Message: fmt.Sprintf(format, args...),
	}
}
