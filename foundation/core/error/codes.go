// File: codes.go
// Title: Error Codes
// Description: Structured error codes and their mapping to categories and
//              HTTP status values.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-12-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2025-12-14 v0.2.0: Task and numerical codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"
	CodeCanceled     Code = "CANCELED"

	// Service and network
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"
	CodeExternalServiceError  Code = "EXTERNAL_SERVICE_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"
	CodeInvalidLength    Code = "INVALID_LENGTH"

	// Numerics
	CodeInvalidTask          Code = "INVALID_TASK"
	CodeNumericalInstability Code = "NUMERICAL_INSTABILITY"
	CodeRenderFailed         Code = "RENDER_FAILED"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout, CodeCanceled,
		CodeServiceUnavailable, CodeServiceInitialization, CodeExternalServiceError,
		CodeConfigError, CodeInvalidConfig,
		CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange, CodeInvalidLength,
		CodeInvalidTask, CodeNumericalInstability, CodeRenderFailed:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeServiceUnavailable, CodeServiceInitialization, CodeExternalServiceError, CodeTimeout, CodeCanceled:
		return "service"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeInvalidInput, CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange, CodeInvalidLength:
		return "validation"
	case CodeInvalidTask, CodeNumericalInstability, CodeRenderFailed:
		return "numeric"
	default:
		return "generic"
	}
}

// IsDomain reports whether errors with this code describe a problem with the
// caller's request rather than a fault of the service.
func (c Code) IsDomain() bool {
	switch c.Category() {
	case "validation":
		return true
	case "numeric":
		return c != CodeRenderFailed
	}
	return false
}

// HTTPStatus returns the appropriate HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return 404
	case CodeInvalidInput, CodeValidationFailed, CodeRequiredField, CodeInvalidFormat,
		CodeValueOutOfRange, CodeInvalidLength, CodeInvalidTask:
		return 400
	case CodeNumericalInstability:
		return 422
	case CodeTimeout:
		return 408
	case CodeCanceled:
		return 499
	case CodeServiceUnavailable:
		return 503
	default:
		return 500
	}
}
