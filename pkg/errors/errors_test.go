package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidMode, "invalid mode: %q", "flowchart")
	if err.Code != ErrCodeInvalidMode {
		t.Errorf("Code = %s", err.Code)
	}
	if !strings.Contains(err.Error(), "INVALID_MODE") {
		t.Errorf("Error() should contain the code: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "flowchart") {
		t.Errorf("Error() should contain the formatted message: %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch tree for %s/%s", "golang", "go")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to the cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() should contain the cause: %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotFound, "repository not found")
	if !Is(err, ErrCodeNotFound) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "deadline exceeded")); got != ErrCodeTimeout {
		t.Errorf("GetCode = %s", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %s, want empty", got)
	}

	// Code survives further wrapping
	inner := New(ErrCodeNotFound, "missing")
	outer := Wrap(ErrCodeInternal, inner, "outer")
	if got := GetCode(outer); got != ErrCodeInternal {
		t.Errorf("GetCode should return the outermost code: %s", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidRepo, "owner is required")
	if got := UserMessage(err); got != "owner is required" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
