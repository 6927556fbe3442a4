// ABOUTME: Typed errors surfaced at the operation boundaries (Ingest, Search, Delete)
// ABOUTME: Matched by callers with errors.Is and errors.As
package core

import (
	"errors"
	"fmt"
)

// ErrIndexUnavailable indicates a search index has not been built yet.
// The lexical branch degrades to empty results on this error; the semantic
// branch treats it as fatal.
var ErrIndexUnavailable = errors.New("search index unavailable")

// ConfigError indicates missing or invalid configuration for an operation.
// Not retryable; fix the environment and restart.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// ValidationError indicates malformed caller input, rejected before any I/O
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// EmbeddingProviderError indicates a failed embedding provider call.
// The whole operation aborts; retrying the whole operation is safe.
type EmbeddingProviderError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *EmbeddingProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("embedding provider error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("embedding provider error: %s", e.Detail)
}

func (e *EmbeddingProviderError) Unwrap() error {
	return e.Err
}

// StoreError indicates a persistence read/write failure. Not retried automatically.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error in %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
