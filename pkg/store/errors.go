package store

import (
	"errors"
	"fmt"
)

// UnavailableError indicates the entity store could not be reached, timed
// out, or did not produce a decodable response. It wraps the underlying
// transport failure.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("entity store unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support for UnavailableError.
// This allows errors.Is(err, &UnavailableError{}) to work with wrapped errors.
func (e *UnavailableError) Is(target error) bool {
	_, ok := target.(*UnavailableError)
	return ok
}

// NewUnavailableError wraps a transport-level failure.
func NewUnavailableError(err error) *UnavailableError {
	return &UnavailableError{Err: err}
}

// IsUnavailable reports whether err is, or wraps, an *UnavailableError.
func IsUnavailable(err error) bool {
	var target *UnavailableError
	return errors.As(err, &target)
}

// RequestError reports a non-success status returned by the entity store
// on a write or probe request.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("entity store returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("entity store returned status %d: %s", e.StatusCode, e.Body)
}

// Is implements errors.Is support for RequestError.
func (e *RequestError) Is(target error) bool {
	_, ok := target.(*RequestError)
	return ok
}
