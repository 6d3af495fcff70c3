// Package error provides the structured error type used across euler.
//
// Package: error
// Title: Euler Error Handling
// Description: Contextual errors with codes, severities and details. Kernel
//              failures carry CodeValidationFailed, CodeInvalidInput or
//              CodeNumericalInstability; transports map codes onto HTTP and
//              gRPC status values.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-12-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-12-14 v0.2.0: Numeric error codes, errors.As based lookups
//
// Usage:
//
//	err := mdwerror.New("derivative vanished at x=0").
//		WithCode(mdwerror.CodeNumericalInstability).
//		WithOperation("kernel.newton").
//		WithDetail("iteration", 3)
//
//	if mdwerror.HasCode(err, mdwerror.CodeNumericalInstability) {
//		// surface as error-field result
//	}
package error
