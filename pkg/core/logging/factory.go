// ============================================================================
// euler - Numerical Methods Service
// ============================================================================
//
// Package:     logging
// Description: Factory functions and the key/value logger used by services
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"sync"

	mdwlog "github.com/msto63/euler/foundation/core/log"
)

// Level is the minimum severity a logger emits
type Level = mdwlog.Level

// Levels accepted by WithLevel
const (
	LevelDebug = mdwlog.LevelDebug
	LevelInfo  = mdwlog.LevelInfo
	LevelWarn  = mdwlog.LevelWarn
	LevelError = mdwlog.LevelError
)

// ParseLevel parses a level name such as "debug" or "warning"
func ParseLevel(level string) (Level, error) {
	return mdwlog.ParseLevel(level)
}

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: json, text, console or logfmt (default: json)
	Format string

	// Output destination (default: stderr)
	Output io.Writer
}

var (
	defaultsMu sync.RWMutex
	defaults   = LoggerConfig{Level: "info", Format: "json"}
)

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       defaults.Level,
		Format:      defaults.Format,
		Output:      defaults.Output,
	}
}

// Configure sets level, format and output for loggers created afterwards
// with New or NewSimpleLogger
func Configure(level, format string, output io.Writer) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if level != "" {
		defaults.Level = level
	}
	if format != "" {
		defaults.Format = format
	}
	defaults.Output = output
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatJSON
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  parseLevel(cfg.Level),
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// NewSimpleLogger creates a foundation logger with the configured defaults
func NewSimpleLogger(serviceName string) *mdwlog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// parseLevel converts a string level to mdwlog.Level
func parseLevel(level string) mdwlog.Level {
	l, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelInfo
	}
	return l
}

// Logger wraps the foundation logger with key/value methods
type Logger struct {
	*mdwlog.Logger
	name string
}

// New creates a key/value logger named name
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// Wrap adapts an existing foundation logger
func Wrap(l *mdwlog.Logger) *Logger {
	return &Logger{Logger: l, name: l.Name()}
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	return &Logger{Logger: l.Logger.WithLevel(level), name: l.name}
}

// WithRequestID returns a new logger tagging entries with requestID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.Logger.WithRequestID(requestID), name: l.name}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to mdwlog.Fields
func toFields(keysAndValues ...interface{}) mdwlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mdwlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
