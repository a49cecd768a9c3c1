package transport

import (
	"errors"
	"fmt"
	"strings"
)

// ClientError represents the failure kinds surfaced by the transport layer
type ClientError interface {
	error
	Type() ErrorType
}

// ErrorType defines the category of client error
type ErrorType string

const (
	// ConfigurationError means no host could be resolved at construction time
	ConfigurationError ErrorType = "configuration"
	// TransportUnavailableError means no transport primitive could be found
	TransportUnavailableError ErrorType = "transport_unavailable"
	// RetryExhaustedError means the retry budget was exceeded by repeated
	// non-2xx responses
	RetryExhaustedError ErrorType = "retry_exhausted"
	// TransportFailure means the exchange itself failed to complete
	TransportFailure ErrorType = "transport_failure"
)

type configurationError struct {
	message string
}

func (e *configurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.message)
}

func (e *configurationError) Type() ErrorType {
	return ConfigurationError
}

type transportUnavailableError struct {
	probed []string
}

func (e *transportUnavailableError) Error() string {
	return fmt.Sprintf(
		"no transport primitive available: probed %s; inject one via Config.Primitive",
		strings.Join(e.probed, ", "),
	)
}

func (e *transportUnavailableError) Type() ErrorType {
	return TransportUnavailableError
}

// retryExhaustedError carries the final response detail so callers can render
// a deterministic, human-readable failure block.
type retryExhaustedError struct {
	statusCode int
	status     string
	body       string
}

func (e *retryExhaustedError) Error() string {
	return fmt.Sprintf(
		"request retries exhausted\n  status code: %d\n  status text: %s\n  body: %s",
		e.statusCode, e.status, e.body,
	)
}

func (e *retryExhaustedError) Type() ErrorType {
	return RetryExhaustedError
}

// StatusCode returns the final response's status code
func (e *retryExhaustedError) StatusCode() int {
	return e.statusCode
}

type transportFailure struct {
	message string
	wrapped error
}

func (e *transportFailure) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("transport failure: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("transport failure: %s", e.message)
}

func (e *transportFailure) Type() ErrorType {
	return TransportFailure
}

func (e *transportFailure) Unwrap() error {
	return e.wrapped
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string) ClientError {
	return &configurationError{message: message}
}

// NewTransportUnavailableError creates an error naming the probed providers
func NewTransportUnavailableError(probed []string) ClientError {
	return &transportUnavailableError{probed: probed}
}

// NewRetryExhaustedError creates a retry-exhausted error from the final
// response observed by the retry loop.
func NewRetryExhaustedError(resp *Response) ClientError {
	return &retryExhaustedError{
		statusCode: resp.StatusCode,
		status:     resp.Status,
		body:       string(resp.Body),
	}
}

// NewTransportFailure wraps an error from the transport primitive itself
func NewTransportFailure(message string, wrapped error) ClientError {
	return &transportFailure{message: message, wrapped: wrapped}
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type() == errorType
	}
	return false
}

// describeFailure renders one failed response as the multi-line block logged
// between attempts and embedded in the terminal error.
func describeFailure(resp *Response) string {
	return fmt.Sprintf(
		"server returned an error\n  status code: %d\n  status text: %s\n  body: %s",
		resp.StatusCode, resp.Status, string(resp.Body),
	)
}
