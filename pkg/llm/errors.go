package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse indicates the model returned no choices.
var ErrEmptyResponse = errors.New("the model returned an empty response")

// RateLimitError indicates the provider rejected the request because the
// rate limit was exceeded.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit exceeded"
	}
	return "rate limit exceeded: " + e.Message
}

// Is implements errors.Is support for RateLimitError.
// This allows errors.Is(err, &RateLimitError{}) to work with wrapped errors.
func (e *RateLimitError) Is(target error) bool {
	_, ok := target.(*RateLimitError)
	return ok
}

// NewRateLimitError creates a new rate limit error with optional custom message
func NewRateLimitError(message ...string) *RateLimitError {
	err := &RateLimitError{}
	if len(message) > 0 {
		err.Message = message[0]
	}
	return err
}

// IsRateLimit reports whether err is a RateLimitError.
func IsRateLimit(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// AuthError indicates the provider rejected the request credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Message
}

// Is implements errors.Is support for AuthError.
func (e *AuthError) Is(target error) bool {
	_, ok := target.(*AuthError)
	return ok
}

// NewAuthError creates a new authentication error with optional custom message
func NewAuthError(message ...string) *AuthError {
	err := &AuthError{}
	if len(message) > 0 {
		err.Message = message[0]
	}
	return err
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// ServerError indicates the provider failed with a 5xx status.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("model server error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("model server error (status %d): %s", e.StatusCode, e.Message)
}

// Is implements errors.Is support for ServerError.
func (e *ServerError) Is(target error) bool {
	_, ok := target.(*ServerError)
	return ok
}

// HTTPStatusCode returns the status reported by the provider.
func (e *ServerError) HTTPStatusCode() int {
	return e.StatusCode
}

// NewServerError creates a new server error for the given status.
func NewServerError(statusCode int, message string) *ServerError {
	return &ServerError{StatusCode: statusCode, Message: message}
}

// IsServer reports whether err is a ServerError.
func IsServer(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}

// CircuitOpenError indicates the circuit breaker rejected the call without
// reaching the provider.
type CircuitOpenError struct {
	Name string
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit breaker '%s' is open", e.Name)
}

// Is implements errors.Is support for CircuitOpenError.
func (e *CircuitOpenError) Is(target error) bool {
	_, ok := target.(*CircuitOpenError)
	return ok
}

// IsCircuitOpen reports whether err is a CircuitOpenError.
func IsCircuitOpen(err error) bool {
	var openErr *CircuitOpenError
	return errors.As(err, &openErr)
}
