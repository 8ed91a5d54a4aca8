package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for catalog service errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Graph store error codes
const (
	GRAPH_CONNECTION_FAILED ErrorCode = "GRAPH_CONNECTION_FAILED"
	GRAPH_CONNECTION_CLOSED ErrorCode = "GRAPH_CONNECTION_CLOSED"
	GRAPH_QUERY_FAILED      ErrorCode = "GRAPH_QUERY_FAILED"
	GRAPH_INDEX_FAILED      ErrorCode = "GRAPH_INDEX_FAILED"
	GRAPH_INVALID_CONFIG    ErrorCode = "GRAPH_INVALID_CONFIG"
)

// Embedding provider error codes
const (
	EMBEDDING_FAILED         ErrorCode = "EMBEDDING_FAILED"
	EMBEDDER_UNAVAILABLE     ErrorCode = "EMBEDDER_UNAVAILABLE"
	EMBEDDER_INVALID_CONFIG  ErrorCode = "EMBEDDER_INVALID_CONFIG"
	EMBEDDING_DIM_MISMATCH   ErrorCode = "EMBEDDING_DIM_MISMATCH"
	EMBEDDING_EMPTY_RESPONSE ErrorCode = "EMBEDDING_EMPTY_RESPONSE"
)

// Language model error codes
const (
	LLM_COMPLETION_FAILED ErrorCode = "LLM_COMPLETION_FAILED"
	LLM_AUTH_FAILED       ErrorCode = "LLM_AUTH_FAILED"
	LLM_INVALID_CONFIG    ErrorCode = "LLM_INVALID_CONFIG"
)

// Retrieval and aggregation error codes
const (
	SEARCH_FAILED    ErrorCode = "SEARCH_FAILED"
	AGGREGATE_FAILED ErrorCode = "AGGREGATE_FAILED"
	POPULATE_FAILED  ErrorCode = "POPULATE_FAILED"
)

// CatalogError represents a structured error with error code, message, and
// optional cause. It supports error wrapping and retryability hints for
// error handling logic.
type CatalogError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
// This enables using errors.Is() and errors.As() with wrapped errors.
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a CatalogError with the same Code.
func (e *CatalogError) Is(target error) bool {
	var catErr *CatalogError
	if errors.As(target, &catErr) {
		return e.Code == catErr.Code
	}
	return false
}

// NewError creates a new non-retryable CatalogError with the given code and message.
func NewError(code ErrorCode, message string) *CatalogError {
	return &CatalogError{
		Code:      code,
		Message:   message,
		Retryable: false,
	}
}

// NewRetryableError creates a new retryable CatalogError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *CatalogError {
	return &CatalogError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable CatalogError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *CatalogError {
	return &CatalogError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}

// WrapRetryableError creates a new retryable CatalogError that wraps an existing error.
func WrapRetryableError(code ErrorCode, message string, cause error) *CatalogError {
	return &CatalogError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// CodeOf extracts the ErrorCode from an error chain.
// Returns an empty code if no CatalogError is present in the chain.
func CodeOf(err error) ErrorCode {
	var catErr *CatalogError
	if errors.As(err, &catErr) {
		return catErr.Code
	}
	return ""
}

// IsRetryable reports whether any CatalogError in the chain is marked retryable.
func IsRetryable(err error) bool {
	var catErr *CatalogError
	if errors.As(err, &catErr) {
		return catErr.Retryable
	}
	return false
}
