// File: entry.go
// Title: Log Entry and Fields
// Description: The Entry record handed to formatters and the Fields helpers
//              used at call sites.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-12-14

package log

import (
	"sort"
	"time"
)

// Entry represents a single log entry with all its metadata
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Error     error
	Duration  time.Duration
}

// Fields represents custom key-value pairs for structured logging
type Fields map[string]interface{}

// Field creates a single field
func Field(key string, value interface{}) Fields { return Fields{key: value} }

// Err creates an error field
func Err(err error) Fields { return Fields{"error": err} }

// Int creates an integer field
func Int(key string, value int) Fields { return Fields{key: value} }

// Float64 creates a float64 field
func Float64(key string, value float64) Fields { return Fields{key: value} }

// String creates a string field
func String(key, value string) Fields { return Fields{key: value} }

// Bool creates a boolean field
func Bool(key string, value bool) Fields { return Fields{key: value} }

// Duration creates a duration field
func Duration(key string, value time.Duration) Fields { return Fields{key: value} }

// Merge combines two field sets into a new one; other wins on conflicts
func (f Fields) Merge(other Fields) Fields {
	result := make(Fields, len(f)+len(other))
	for k, v := range f {
		result[k] = v
	}
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Keys returns the field names in sorted order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewEntry creates a new log entry with the given level and message
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}
