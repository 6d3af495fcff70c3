// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes and severities.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-12-14

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("derivative vanished")

	if err.Error() != "derivative vanished" {
		t.Errorf("Error() = %q, want %q", err.Error(), "derivative vanished")
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
	if !strings.Contains(err.Caller().Function, "TestNew") {
		t.Errorf("Caller().Function = %q, want TestNew frame", err.Caller().Function)
	}
}

func TestNewf(t *testing.T) {
	err := Newf("x must be positive, got %d", -1)
	if err.Error() != "x must be positive, got -1" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !strings.Contains(err.Caller().Function, "TestNewf") {
		t.Errorf("Caller().Function = %q, want TestNewf frame", err.Caller().Function)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{name: "nil error", err: nil, message: "ctx", wantNil: true},
		{name: "std error", err: errors.New("boom"), message: "solve failed", wantMsg: "solve failed: boom", wantCode: CodeUnknown},
		{
			name:     "inherits code",
			err:      New("pivot is zero").WithCode(CodeNumericalInstability),
			message:  "kernel 4",
			wantMsg:  "kernel 4: pivot is zero",
			wantCode: CodeNumericalInstability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("errors.Is() should find the wrapped error")
			}
		})
	}
}

func TestWrap_TruncatesDeepChains(t *testing.T) {
	var err error = New("root")
	for i := 0; i < MaxErrorChainDepth+2; i++ {
		err = Wrap(err, fmt.Sprintf("level %d", i))
	}
	if !strings.Contains(err.Error(), "chain truncated") {
		t.Errorf("Error() = %q, want truncated chain", err.Error())
	}
}

func TestWithCode_SetsSeverity(t *testing.T) {
	err := New("bad").WithCode(CodeInvalidInput)
	if err.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityLow)
	}

	explicit := New("bad").WithSeverity(SeverityCritical).WithCode(CodeInvalidInput)
	if explicit.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want explicit %v", explicit.Severity(), SeverityCritical)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("log of non-positive value").WithCode(CodeNumericalInstability)
	outer := fmt.Errorf("task 5: %w", inner)

	if !HasCode(outer, CodeNumericalInstability) {
		t.Error("HasCode() = false, want true through fmt wrapping")
	}
	if HasCode(outer, CodeInvalidInput) {
		t.Error("HasCode() = true for unrelated code")
	}
	if GetCode(outer) != CodeNumericalInstability {
		t.Errorf("GetCode() = %v, want %v", GetCode(outer), CodeNumericalInstability)
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() on foreign error should be CodeUnknown")
	}
}

func TestMessageOf(t *testing.T) {
	err := Wrap(errors.New("cause"), "outer message")
	if got := MessageOf(err); got != "outer message" {
		t.Errorf("MessageOf() = %q, want %q", got, "outer message")
	}
	if got := MessageOf(errors.New("plain")); got != "plain" {
		t.Errorf("MessageOf() = %q, want %q", got, "plain")
	}
	if got := MessageOf(nil); got != "" {
		t.Errorf("MessageOf(nil) = %q, want empty", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("omega out of range").
		WithCode(CodeValueOutOfRange).
		WithOperation("kernel.relaxation").
		WithDetail("omega", 2.5)

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("json.Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != "VALUE_OUT_OF_RANGE" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["operation"] != "kernel.relaxation" {
		t.Errorf("operation = %v", decoded["operation"])
	}
}

func TestString(t *testing.T) {
	s := New("bad").WithCode(CodeInvalidTask).WithDetail("b", 2).WithDetail("a", 1).String()
	if !strings.Contains(s, "Details: {a=1, b=2}") {
		t.Errorf("String() = %q, want sorted details", s)
	}
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidInput, 400},
		{CodeValidationFailed, 400},
		{CodeInvalidTask, 400},
		{CodeNumericalInstability, 422},
		{CodeNotFound, 404},
		{CodeServiceUnavailable, 503},
		{CodeInternal, 500},
		{CodeRenderFailed, 500},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCode_IsDomain(t *testing.T) {
	if !CodeNumericalInstability.IsDomain() {
		t.Error("CodeNumericalInstability should be a domain code")
	}
	if !CodeInvalidLength.IsDomain() {
		t.Error("CodeInvalidLength should be a domain code")
	}
	if CodeRenderFailed.IsDomain() {
		t.Error("CodeRenderFailed is a service fault")
	}
	if CodeInternal.IsDomain() {
		t.Error("CodeInternal is a service fault")
	}
	if !CodeInvalidTask.IsValid() || Code("NOPE").IsValid() {
		t.Error("IsValid() mismatch")
	}
}

func TestSeverity_String(t *testing.T) {
	if SeverityHigh.String() != "high" || Severity(9).String() != "unknown" {
		t.Error("Severity.String() mismatch")
	}
	if !SeverityCritical.ShouldAlert() || SeverityLow.ShouldAlert() {
		t.Error("ShouldAlert() mismatch")
	}
}
