package goodreads

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrDeveloperCredentials indicates the developer key/secret pair is missing
	ErrDeveloperCredentials = errors.New("developer credentials required")
	// ErrSessionRequired indicates a user-tier call was made without a session
	ErrSessionRequired = errors.New("OAuth session required")
)

// ConfigurationError is returned when the credential tier an operation needs is
// not satisfied. It is always raised before any network call.
type ConfigurationError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("goodreads %s: %v", e.Operation, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// HTTPError represents a non-2xx response from the API
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("goodreads API error: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, strings.TrimSpace(e.Body))
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// InvalidResponseError is returned when a successfully parsed response does not
// hold the container the operation expects.
type InvalidResponseError struct {
	Container string
	Response  *Value
}

// Error implements the error interface
func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("response %s did not contain an item called %q", e.Response.describe(), e.Container)
}

// UnsupportedOperationError is returned for verbs the transport does not implement
type UnsupportedOperationError struct {
	Method string
	Path   string
}

// Error implements the error interface
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("goodreads: %s %s is not supported", e.Method, e.Path)
}
