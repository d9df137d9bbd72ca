// Package errors maps failures onto the codes returned by the dashboard API.
//
// Handlers return an *Error directly for bad input. Anything else, such as a
// GitHub failure surfacing from a collection, goes through [From]:
//
//	if err := errors.ValidateProjectKey(key); err != nil {
//	    return err // INVALID_KEY, 400
//	}
//	statuses, err := collector.Collect(ctx, nil)
//	if err != nil {
//	    e := errors.From(err) // RATE_LIMITED, UPSTREAM_ERROR, ...
//	    http.Error(w, e.Message, e.Code.HTTPStatus())
//	}
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rokucommunity/release-dashboard/pkg/httputil"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidKey    Code = "INVALID_KEY"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeProjectNotFound Code = "PROJECT_NOT_FOUND"

	// GitHub
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"
	ErrCodeUpstream    Code = "UPSTREAM_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnavailable Code = "UNAVAILABLE"
)

// HTTPStatus returns the response status for c. Unknown codes map to 500.
func (c Code) HTTPStatus() int {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidKey:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeProjectNotFound:
		return http.StatusNotFound
	case ErrCodeNetwork, ErrCodeUpstream:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a coded error. Message is safe to show to API clients; Cause is not.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// From classifies err. An *Error anywhere in the chain is returned as is;
// GitHub 403 and 429 responses are rate limiting; other HTTP statuses and
// transport failures are upstream and network errors.
func From(err error) *Error {
	var (
		apiErr       *Error
		statusErr    *httputil.StatusError
		transportErr *httputil.TransportError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(ErrCodeTimeout, err, "request timed out")
	case errors.Is(err, context.Canceled):
		return Wrap(ErrCodeUnavailable, err, "request canceled")
	case errors.As(err, &statusErr):
		if statusErr.StatusCode == http.StatusForbidden || statusErr.StatusCode == http.StatusTooManyRequests {
			return Wrap(ErrCodeRateLimited, err, "GitHub rate limit reached")
		}
		return Wrap(ErrCodeUpstream, err, "GitHub returned status %d", statusErr.StatusCode)
	case errors.As(err, &transportErr):
		return Wrap(ErrCodeNetwork, err, "could not reach GitHub")
	default:
		return Wrap(ErrCodeInternal, err, "internal error")
	}
}
