package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "cycle through %d tasks", 3)

	if err.Code != ErrCodeInvalidGraph {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidGraph)
	}
	if err.Message != "cycle through 3 tasks" {
		t.Errorf("Message = %q, want %q", err.Message, "cycle through 3 tasks")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestError_WithCause(t *testing.T) {
	cause := stderrors.New("read failed")
	err := Wrap(ErrCodeInternal, cause, "failed to load plan %s", "p.json")

	if !strings.Contains(err.Error(), "read failed") {
		t.Errorf("Error() = %q, want it to contain the cause", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDanglingReference, "dependency d1 names unknown task x")

	if !Is(err, ErrCodeDanglingReference) {
		t.Error("Is(err, ErrCodeDanglingReference) = false, want true")
	}
	if Is(err, ErrCodeSelfDependency) {
		t.Error("Is(err, ErrCodeSelfDependency) = true, want false")
	}
	if Is(stderrors.New("plain"), ErrCodeDanglingReference) {
		t.Error("Is(plain error, code) = true, want false")
	}
}

func TestIs_WrappedChain(t *testing.T) {
	inner := New(ErrCodeSelfDependency, "task a depends on itself")
	outer := fmt.Errorf("validating plan: %w", inner)

	if !Is(outer, ErrCodeSelfDependency) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidPlan, "empty plan")); got != ErrCodeInvalidPlan {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidPlan)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "adding this dependency would create a cycle")
	if got := UserMessage(err); got != "adding this dependency would create a cycle" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "task-42", false},
		{"valid uuid", "0b09a5c9-3c3b-4a85-a06f-9f8a9e2f0a11", false},
		{"empty", "", true},
		{"control character", "task\x00one", true},
		{"too long", strings.Repeat("a", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRowCount(t *testing.T) {
	if err := ValidateRowCount(5); err != nil {
		t.Errorf("ValidateRowCount(5) = %v, want nil", err)
	}
	if err := ValidateRowCount(0); err == nil {
		t.Error("ValidateRowCount(0) = nil, want error")
	}
	if err := ValidateRowCount(1000); err == nil {
		t.Error("ValidateRowCount(1000) = nil, want error")
	}
}

func TestValidateMaxParallel(t *testing.T) {
	if err := ValidateMaxParallel(2); err != nil {
		t.Errorf("ValidateMaxParallel(2) = %v, want nil", err)
	}
	if err := ValidateMaxParallel(0); err == nil {
		t.Error("ValidateMaxParallel(0) = nil, want error")
	}
}
