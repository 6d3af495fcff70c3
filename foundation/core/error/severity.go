// File: severity.go
// Title: Error Severity
// Description: Severity levels and the default severity per error code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-12-14

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers rejected input that the caller can correct
	SeverityLow Severity = iota
	// SeverityMedium covers failures with a workaround
	SeverityMedium
	// SeverityHigh covers failures of a whole request path
	SeverityHigh
	// SeverityCritical makes the service unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeServiceUnavailable, CodeServiceInitialization:
		return SeverityCritical
	case CodeInternal, CodeRenderFailed, CodeInvalidConfig, CodeConfigError:
		return SeverityHigh
	case CodeInvalidInput, CodeNotFound, CodeValidationFailed, CodeRequiredField,
		CodeInvalidFormat, CodeValueOutOfRange, CodeInvalidLength,
		CodeInvalidTask, CodeNumericalInstability:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
