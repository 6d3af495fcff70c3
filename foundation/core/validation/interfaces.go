// File: interfaces.go
// Title: Core Validation Interfaces and Types
// Description: Validator interface, structured results and their conversion
//              into foundation errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-12-14
//
// Change History:
// - 2025-01-25 v0.1.0: Initial validation interfaces implementation
// - 2025-12-14 v0.2.0: Codes aligned with foundation error codes

// Package validation provides composable validators for loosely typed input.
package validation

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/euler/foundation/core/error"
)

// Validation error codes; each maps onto a foundation error code
const (
	CodeRequired = string(mdwerror.CodeRequiredField)
	CodeFormat   = string(mdwerror.CodeInvalidFormat)
	CodeLength   = string(mdwerror.CodeInvalidLength)
	CodeRange    = string(mdwerror.CodeValueOutOfRange)
	CodeCustom   = string(mdwerror.CodeValidationFailed)
)

// Validator validates a single value
type Validator interface {
	Validate(value interface{}) ValidationResult
}

// ValidatorFunc adapts a function to the Validator interface
type ValidatorFunc func(value interface{}) ValidationResult

// Validate implements Validator
func (f ValidatorFunc) Validate(value interface{}) ValidationResult {
	return f(value)
}

// ValidationResult represents the result of a validation operation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation failure
type ValidationError struct {
	Code     string      `json:"code"`
	Field    string      `json:"field,omitempty"`
	Message  string      `json:"message"`
	Value    interface{} `json:"value,omitempty"`
	Expected interface{} `json:"expected,omitempty"`
}

// NewValidationResult creates a successful validation result
func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// NewValidationError creates a failed result with a single error
func NewValidationError(code, message string) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: []ValidationError{{Code: code, Message: message}},
	}
}

// AddError records a failure
func (r *ValidationResult) AddError(code, message string) *ValidationResult {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Code: code, Message: message})
	return r
}

// AddFieldError records a failure for a named field
func (r *ValidationResult) AddFieldError(code, field, message string, value interface{}) *ValidationResult {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Code: code, Field: field, Message: message, Value: value})
	return r
}

// ForField returns a copy whose errors are attributed to field, keeping
// field names already set
func (r ValidationResult) ForField(field string) ValidationResult {
	if r.Valid {
		return r
	}
	out := ValidationResult{Valid: false, Errors: make([]ValidationError, len(r.Errors))}
	for i, e := range r.Errors {
		if e.Field == "" {
			e.Field = field
		}
		out.Errors[i] = e
	}
	return out
}

// FirstError returns the first error or nil
func (r ValidationResult) FirstError() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// ErrorMessages returns all messages, prefixed with their field
func (r ValidationResult) ErrorMessages() []string {
	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		messages = append(messages, e.Error())
	}
	return messages
}

// HasError reports whether any error carries code
func (r ValidationResult) HasError(code string) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// ToError converts the result into a foundation error, nil when valid
func (r ValidationResult) ToError() error {
	if r.Valid {
		return nil
	}
	first := r.FirstError()
	if first == nil {
		return mdwerror.New("validation failed").WithCode(mdwerror.CodeValidationFailed)
	}

	err := mdwerror.New(first.Error()).WithCode(mdwerror.Code(first.Code))
	if first.Field != "" {
		err = err.WithDetail("field", first.Field)
	}
	if first.Value != nil {
		err = err.WithDetail("value", first.Value)
	}
	if first.Expected != nil {
		err = err.WithDetail("expected", first.Expected)
	}
	if len(r.Errors) > 1 {
		err = err.WithDetail("totalErrors", len(r.Errors))
		err = err.WithDetail("allMessages", r.ErrorMessages())
	}
	return err
}

// String returns a human-readable representation of the result
func (r ValidationResult) String() string {
	if r.Valid {
		return "ValidationResult{valid: true}"
	}
	return fmt.Sprintf("ValidationResult{valid: false, errors: [%s]}", strings.Join(r.ErrorMessages(), "; "))
}

// Error renders the failure as "<field>: <message>" or just the message
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Combine merges multiple validation results into a single result
func Combine(results ...ValidationResult) ValidationResult {
	combined := NewValidationResult()
	for _, result := range results {
		if !result.Valid {
			combined.Valid = false
			combined.Errors = append(combined.Errors, result.Errors...)
		}
	}
	return combined
}
