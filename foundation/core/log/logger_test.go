// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, derived loggers, formatters and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-12-14

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/euler/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf, Name: "test"}), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("json.Unmarshal(%q) error = %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatJSON)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), buf.String())
	}
	if lines[0]["level"] != "warn" || lines[1]["level"] != "error" {
		t.Errorf("levels = %v, %v", lines[0]["level"], lines[1]["level"])
	}
}

func TestLogger_FieldsAndContext(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	derived := logger.WithField("task", 4).WithRequestID("req-1")
	derived.Info("solved", Float64("lambda", 12.07), String("method", "power"))

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	got := lines[0]
	if got["task"] != float64(4) {
		t.Errorf("task = %v, want 4", got["task"])
	}
	if got["request_id"] != "req-1" {
		t.Errorf("request_id = %v", got["request_id"])
	}
	if got["lambda"] != 12.07 || got["method"] != "power" {
		t.Errorf("fields = %v", got)
	}
	if got["logger"] != "test" {
		t.Errorf("logger = %v", got["logger"])
	}

	buf.Reset()
	logger.Info("parent")
	if strings.Contains(buf.String(), "req-1") {
		t.Error("derived context leaked into parent logger")
	}
}

func TestLogger_LogErrorUsesSeverity(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	logger.LogError(mdwerror.New("bad tol").WithCode(mdwerror.CodeInvalidInput))
	logger.LogError(mdwerror.New("render").WithCode(mdwerror.CodeRenderFailed))
	logger.LogError(errors.New("plain"))
	logger.LogError(nil)

	lines := decodeLines(t, buf)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	wantLevels := []string{"info", "error", "warn"}
	for i, want := range wantLevels {
		if lines[i]["level"] != want {
			t.Errorf("line %d level = %v, want %v", i, lines[i]["level"], want)
		}
	}
	if lines[0]["error_code"] != "INVALID_INPUT" {
		t.Errorf("error_code = %v", lines[0]["error_code"])
	}
	if _, ok := lines[0]["error_details"]; !ok {
		t.Error("error_details missing for foundation error")
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("nop logger should have every level disabled")
	}
	logger.Error("dropped")
}

func TestTextFormatter_SortedFields(t *testing.T) {
	f := &TextFormatter{DisableTimestamp: true}
	entry := NewEntry(LevelInfo, "hello")
	entry.Fields["b"] = 2
	entry.Fields["a"] = 1

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := string(out); got != "[INF] hello [a=1 b=2]\n" {
		t.Errorf("Format() = %q", got)
	}
}

func TestLogfmtFormatter(t *testing.T) {
	f := &LogfmtFormatter{TimestampFormat: time.RFC3339}
	entry := NewEntry(LevelWarn, "slow")
	entry.Fields["path"] = "/compute"
	entry.Fields["status"] = 200

	out, _ := f.Format(entry)
	s := string(out)
	for _, want := range []string{`level=warn`, `message="slow"`, `path="/compute"`, `status=200`} {
		if !strings.Contains(s, want) {
			t.Errorf("Format() = %q, missing %q", s, want)
		}
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"debug", LevelDebug, false},
		{"WARNING", LevelWarn, false},
		{"", LevelInfo, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}

	if f, err := ParseFormat("logfmt"); err != nil || f != FormatLogfmt {
		t.Errorf("ParseFormat(logfmt) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestTimer_StopOnce(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	timer := logger.StartTimer("simpson").WithField("n", 10)
	if d := timer.Stop(); d <= 0 {
		t.Errorf("Stop() = %v, want > 0", d)
	}
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0]["message"] != "simpson completed" || lines[0]["n"] != float64(10) {
		t.Errorf("timer line = %v", lines[0])
	}
}

func TestTimer_StopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	logger.StartTimer("spline").StopWithError(errors.New("knots"))

	lines := decodeLines(t, buf)
	if len(lines) != 1 || lines[0]["level"] != "error" || lines[0]["message"] != "spline failed" {
		t.Errorf("timer line = %v", lines)
	}
}
