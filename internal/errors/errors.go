package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind sentinels, matched with errors.Is against the typed errors below.
var (
	ErrTypeMismatch         = stderrors.New("type mismatch")
	ErrMalformedSubdocument = stderrors.New("malformed subdocument")
	ErrMissingField         = stderrors.New("missing field")
	ErrRequestFailed        = stderrors.New("request failed")
)

// TypeMismatchError represents a wire value that cannot be coerced to the
// declared type of a field
type TypeMismatchError struct {
	Record string
	Field  string
	Want   string
	Value  string
}

// Error returns the error message
func (e *TypeMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: cannot use %s as %s", e.Record, e.Value, e.Want)
	}
	return fmt.Sprintf("%s.%s: cannot use %s as %s", e.Record, e.Field, e.Value, e.Want)
}

// Is reports whether target is ErrTypeMismatch
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// MalformedSubdocumentError represents a string-encoded sub-model that is not valid JSON text
type MalformedSubdocumentError struct {
	Record string
	Field  string
	Err    error
}

// Error returns the error message
func (e *MalformedSubdocumentError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s.%s: malformed JSON subdocument", e.Record, e.Field)
	}
	return fmt.Sprintf("%s.%s: malformed JSON subdocument: %v", e.Record, e.Field, e.Err)
}

// Unwrap returns the underlying parse error
func (e *MalformedSubdocumentError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedSubdocument
func (e *MalformedSubdocumentError) Is(target error) bool {
	return target == ErrMalformedSubdocument
}

// MissingFieldError represents a required field absent from the payload
type MissingFieldError struct {
	Record string
	Field  string
}

// Error returns the error message
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s.%s: required field is missing", e.Record, e.Field)
}

// Is reports whether target is ErrMissingField
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// RequestFailedError represents a non-success outcome reported by the panel
// or by the HTTP transport
type RequestFailedError struct {
	Operation string
	Endpoint  string
	Status    int
	Message   string
	Err       error
}

// Error returns the error message
func (e *RequestFailedError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("panel API error during %s (%s): %v", e.Operation, e.Endpoint, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("panel API error during %s (%s, status %d): %s", e.Operation, e.Endpoint, e.Status, e.Message)
	default:
		return fmt.Sprintf("panel API error during %s (%s): %s", e.Operation, e.Endpoint, e.Message)
	}
}

// Unwrap returns the transport error, if any
func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRequestFailed
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Section string
	Message string
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Section, e.Message)
}
