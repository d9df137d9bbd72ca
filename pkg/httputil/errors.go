package httputil

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingURL is returned when a request has no URL. It is not retried.
var ErrMissingURL = errors.New("request URL is required")

// TransportError reports a request that failed before a response status was
// received: DNS, connection, TLS, or reading the body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a response with a non-2xx status code.
//
// Response is the original response. Its Body has already been read into
// Body and replaced with an in-memory reader, so it can be read again after
// the connection is gone.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Response   *http.Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: http status %d", e.Method, e.URL, e.StatusCode)
}

// IsStatus reports whether err is a [*StatusError] with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
