package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	mdwlog "github.com/msto63/euler/foundation/core/log"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger := New("euler")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.name != "euler" {
		t.Errorf("name = %v, want euler", logger.name)
	}
}

func TestLogger_WithLevel(t *testing.T) {
	logger := New("test")
	result := logger.WithLevel(LevelError)

	if result.name != "test" {
		t.Errorf("name should be preserved: got %v", result.name)
	}
	if result.IsLevelEnabled(mdwlog.LevelWarn) {
		t.Error("warn should be disabled at error level")
	}
}

func TestLogger_KeyValues(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Wrap(NewLogger(LoggerConfig{ServiceName: "gateway", Level: "debug", Format: "json", Output: buf}))

	logger.WithRequestID("abc").Info("request", "method", "POST", "status", 200, "orphan")

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if entry["method"] != "POST" || entry["status"] != float64(200) {
		t.Errorf("entry = %v", entry)
	}
	if entry["request_id"] != "abc" || entry["logger"] != "gateway" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["orphan"]; ok {
		t.Error("orphan key should be dropped")
	}
}

func TestNewLogger_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(LoggerConfig{ServiceName: "cli", Level: "warn", Format: "text", Output: buf})

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "[WRN] {cli} visible") {
		t.Errorf("output = %q", out)
	}
}

func TestParseLevel_Exported(t *testing.T) {
	level, err := ParseLevel("warning")
	if err != nil || level != LevelWarn {
		t.Errorf("ParseLevel(warning) = %v, %v", level, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected mdwlog.Level
	}{
		{"debug", mdwlog.LevelDebug},
		{"info", mdwlog.LevelInfo},
		{"warning", mdwlog.LevelWarn},
		{"error", mdwlog.LevelError},
		{"invalid", mdwlog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConfigure(t *testing.T) {
	buf := &bytes.Buffer{}
	Configure("debug", "logfmt", buf)
	defer Configure("info", "json", nil)

	cfg := DefaultLoggerConfig("svc")
	if cfg.Level != "debug" || cfg.Format != "logfmt" || cfg.Output != buf {
		t.Errorf("DefaultLoggerConfig() = %+v", cfg)
	}

	New("svc").Debug("configured", "k", 1)
	if !strings.Contains(buf.String(), `message="configured"`) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestToFields(t *testing.T) {
	if fields := toFields(); fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields := toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	fields = toFields(123, "value")
	if len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Wrap(NewLogger(LoggerConfig{ServiceName: "bench", Output: &bytes.Buffer{}}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
