package errors

import (
	"fmt"
)

// ParseError represents an override file parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures flag or configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// QueryError reports a media query that could not be parsed.
type QueryError struct {
	Query   string
	Offset  int
	Message string
}

// NewQueryError constructs a QueryError pointing at the byte offset where parsing stopped.
func NewQueryError(query string, offset int, message string) error {
	return &QueryError{Query: query, Offset: offset, Message: message}
}

func (e *QueryError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("media query error at %d in %q: %s", e.Offset, e.Query, e.Message)
}

// SubscriptionError indicates a host refused or failed a media query subscription.
type SubscriptionError struct {
	Query string
	Err   error
}

// NewSubscriptionError constructs a SubscriptionError for the given query.
func NewSubscriptionError(query string, err error) error {
	return &SubscriptionError{Query: query, Err: err}
}

func (e *SubscriptionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Query != "" {
		return fmt.Sprintf("subscription error [%s]: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("subscription error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *SubscriptionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
