package errors

import (
	"errors"
	"fmt"
	"time"
)

// Error types for the lightning-meter-index system
type ErrorType string

const (
	// Matching pipeline errors
	ErrorTypeResolution ErrorType = "resolution"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeSearch     ErrorType = "search"

	// Startup errors
	ErrorTypeResource ErrorType = "resource"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// ErrUnresolved is the underlying cause of every ResolutionError.
var ErrUnresolved = errors.New("no dictionary or heuristic match")

// ResolutionError reports that a word could not be found in the pronunciation
// dictionary, directly or through any transform. It never leaves the resolver:
// the algorithmic estimate absorbs it.
type ResolutionError struct {
	Type       ErrorType
	Word       string
	Reason     string
	Underlying error
	Timestamp  time.Time
}

// NewResolutionError creates a new resolution error for word
func NewResolutionError(word, reason string) *ResolutionError {
	return &ResolutionError{
		Type:       ErrorTypeResolution,
		Word:       word,
		Reason:     reason,
		Underlying: ErrUnresolved,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ResolutionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("resolution failed for %q (%s): %v", e.Word, e.Reason, e.Underlying)
	}
	return fmt.Sprintf("resolution failed for %q: %v", e.Word, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ResolutionError) Unwrap() error {
	return e.Underlying
}

// ValidationError represents a rejected call: a renderer precondition or a
// malformed query. It is never retried.
type ValidationError struct {
	Type      ErrorType
	Operation string
	Field     string
	Message   string
	Timestamp time.Time
}

// NewValidationError creates a new validation error
func NewValidationError(op, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Type:      ErrorTypeValidation,
		Operation: op,
		Field:     field,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: invalid %s: %s", e.Operation, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// ResourceError represents a pronunciation dictionary, hyphenation dictionary
// or corpus text that failed to load. The process must not serve without it.
type ResourceError struct {
	Type       ErrorType
	Resource   string
	Path       string
	Underlying error
	Timestamp  time.Time
}

// NewResourceError creates a new resource load error
func NewResourceError(resource, path string, err error) *ResourceError {
	return &ResourceError{
		Type:       ErrorTypeResource,
		Resource:   resource,
		Path:       path,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to load %s from %s: %v", e.Resource, e.Path, e.Underlying)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Resource, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ResourceError) Unwrap() error {
	return e.Underlying
}

// SearchError represents a search operation error
type SearchError struct {
	Type       ErrorType
	Query      string
	Underlying error
	Timestamp  time.Time
}

// NewSearchError creates a new search error
func NewSearchError(query string, err error) *SearchError {
	return &SearchError{
		Type:       ErrorTypeSearch,
		Query:      query,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed for query %q: %v", e.Query, e.Underlying)
}

// Unwrap returns the underlying error
func (e *SearchError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// ErrorOrNil returns nil when no errors were collected
func (e *MultiError) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsResource reports whether err is or wraps a ResourceError
func IsResource(err error) bool {
	var re *ResourceError
	return errors.As(err, &re)
}

// IsUnresolved reports whether err is or wraps a ResolutionError
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrUnresolved)
}
