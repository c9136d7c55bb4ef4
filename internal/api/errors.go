package api

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// ErrNoResponseBody reports a 2xx response whose body was absent, could not
// be parsed, or lacked a required field.
var ErrNoResponseBody = errors.New("no response body")

// ErrTaskIDRequired is returned, before anything is sent, when an endpoint
// that identifies a task is called with a blank id.
var ErrTaskIDRequired = errors.New("task id required")

// TransportError wraps a failure to complete the exchange: connection
// errors, timeouts, and non-2xx statuses (as *googleapi.Error).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a malformed JSON body. It matches ErrNoResponseBody as
// well as the underlying decoder error.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string   { return e.Op + ": decode response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() []error { return []error{ErrNoResponseBody, e.Err} }

// PassthroughError carries an upstream failure out of a composite
// operation unchanged.
type PassthroughError struct {
	Op  string
	Err error
}

func (e *PassthroughError) Error() string {
	if e.Err == nil {
		return e.Op + ": upstream failure"
	}
	return e.Op + ": " + e.Err.Error()
}
func (e *PassthroughError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status of a non-2xx failure, or 0.
func StatusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsAuthError reports whether err was caused by a 401 or 403 response.
func IsAuthError(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
