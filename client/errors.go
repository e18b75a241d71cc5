package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Kind classifies a failed call.
type Kind int

const (
	// KindNetworkUnreachable means no response arrived at all.
	KindNetworkUnreachable Kind = iota
	// KindTimeout means the fixed request deadline elapsed.
	KindTimeout
	// KindServerError means the server answered with a non-2xx status.
	KindServerError
	// KindValidation means the request was rejected locally before
	// dispatch (missing required field, insufficient points).
	KindValidation
	// KindNotFound means a lookup by id or username failed.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNetworkUnreachable:
		return "network unreachable"
	case KindTimeout:
		return "timeout"
	case KindServerError:
		return "server error"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is the classified failure surfaced to callers. Every resource
// call fails with exactly one of these; there are no retries.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr.Kind == kind
	}
	return false
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// classifyTransportError maps a transport failure to Timeout or
// NetworkUnreachable.
func classifyTransportError(err error) *Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindNetworkUnreachable, Err: err}
}

// classifyStatusError maps a non-2xx response to NotFound or ServerError.
func classifyStatusError(statusCode int, message string) *Error {
	kind := KindServerError
	if statusCode == http.StatusNotFound {
		kind = KindNotFound
	}
	return &Error{Kind: kind, StatusCode: statusCode, Message: message}
}
