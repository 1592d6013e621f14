package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrConflict         = errors.New("conflict")
	ErrExtraction       = errors.New("extraction failed")
	ErrExternalCall     = errors.New("external call failed")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)

// RawExcerptLimit is the number of runes of a raw model response kept
// on an ExtractionError for diagnostic display.
const RawExcerptLimit = 500

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ExtractionError is returned when a model call succeeded but its text
// could not be parsed into a structured record after fence stripping.
type ExtractionError struct {
	// Err is the underlying parse error.
	Err error
	// Raw holds at most RawExcerptLimit runes of the raw response.
	Raw string
}

// NewExtractionError builds an ExtractionError, truncating raw to RawExcerptLimit runes.
func NewExtractionError(err error, raw string) *ExtractionError {
	return &ExtractionError{Err: err, Raw: Truncate(raw, RawExcerptLimit)}
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("parse model response: %v", e.Err)
}

func (e *ExtractionError) Unwrap() []error { return []error{ErrExtraction, e.Err} }

// ExternalCallError is returned when the model call itself could not be
// completed (network, auth, quota, empty response).
type ExternalCallError struct {
	Op  string
	Err error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalCallError) Unwrap() []error { return []error{ErrExternalCall, e.Err} }

// UserMessage renders the message shown to a student for a failed action.
// Extraction and external call failures get distinct wording.
func UserMessage(action string, err error) string {
	var extErr *ExtractionError
	if errors.As(err, &extErr) {
		return fmt.Sprintf("Error parsing %s response: %v", action, extErr.Err)
	}
	var callErr *ExternalCallError
	if errors.As(err, &callErr) {
		return fmt.Sprintf("Error %s: %v", gerund(action), callErr.Err)
	}
	return fmt.Sprintf("Error %s: %v", gerund(action), err)
}

func gerund(action string) string {
	switch action {
	case "question":
		return "generating question"
	case "worksheet":
		return "marking worksheet"
	default:
		return action
	}
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
