// Package log provides structured logging for euler services.
//
// Package: log
// Title: Structured Logging
// Description: Leveled structured logging with typed fields, request id
//              context, pluggable formatters (json, text, console, logfmt)
//              and operation timers. Errors created with foundation/core/error
//              are expanded into an error_details object by the JSON formatter.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-12-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-12-14 v0.2.0: Sorted field output, synchronous writer with a write lock
//
// Usage:
//
//	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelDebug, Format: mdwlog.FormatText, Name: "euler"})
//	logger.Info("task solved", mdwlog.Int("task", 4), mdwlog.Float64("lambda", 12.07))
//
//	timer := logger.StartTimer("power_iteration")
//	defer timer.Stop()
package log
