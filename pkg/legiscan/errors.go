package legiscan

import (
	"errors"
	"fmt"
	"time"
)

// TimeoutError means the call exceeded its class-specific bound. Recoverable:
// the user should retry or narrow the window, which is why it is distinct
// from a generic network failure.
type TimeoutError struct {
	Op    string
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Op, e.Limit)
}

// UnexpectedContentTypeError means the backend answered with something other
// than JSON, typically an HTML error page. Infrastructure problem, not a
// data problem.
type UnexpectedContentTypeError struct {
	Op          string
	ContentType string
	Status      int
}

func (e *UnexpectedContentTypeError) Error() string {
	return fmt.Sprintf("%s returned non-JSON content type %q (status %d)", e.Op, e.ContentType, e.Status)
}

// HttpStatusError is a 4xx/5xx with a JSON body. Message carries the body's
// own message when it had one.
type HttpStatusError struct {
	Op      string
	Status  int
	Message string
}

func (e *HttpStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
}

// UnexpectedEnvelopeError means none of the tolerated response shapes
// matched. Loud on purpose: a new envelope shape is a contract change.
type UnexpectedEnvelopeError struct {
	Op string
}

func (e *UnexpectedEnvelopeError) Error() string {
	return fmt.Sprintf("%s returned an unrecognized response envelope", e.Op)
}

// IsConflict reports whether err is an HTTP 409, which highlight-add and
// reviewed-toggle treat as "already applied" success.
func IsConflict(err error) bool {
	var se *HttpStatusError
	return errors.As(err, &se) && se.Status == 409
}

// IsTimeout reports whether err is a request timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
