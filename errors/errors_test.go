package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if err.Message != "boom" {
		t.Errorf("expected message 'boom', got %q", err.Message)
	}
}

func TestAppError_EmptySequence(t *testing.T) {
	err := EmptySequence("reduce")
	if err.Code != ErrCodeEmptySequence {
		t.Errorf("expected EMPTY_SEQUENCE, got %s", err.Code)
	}
	if !strings.Contains(err.Error(), "reduce of empty sequence") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if err.Details["operation"] != "reduce" {
		t.Errorf("expected operation=reduce, got %v", err.Details["operation"])
	}
	if !IsCallerFault(err.Code) {
		t.Error("EMPTY_SEQUENCE is a caller fault")
	}
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("sum: %w", EmptySequence("reduce"))
	if !stderrors.Is(wrapped, ErrEmptySequence) {
		t.Error("expected errors.Is to match by code through wrapping")
	}
	if stderrors.Is(wrapped, ErrMisshapenElement) {
		t.Error("different codes must not match")
	}
	if stderrors.Is(wrapped, stderrors.New("EMPTY_SEQUENCE")) {
		t.Error("plain errors must not match")
	}
}

func TestAppError_MisshapenElement(t *testing.T) {
	err := MisshapenElement("unzip", 3)
	if !strings.Contains(err.Message, "int") {
		t.Errorf("expected element type in message, got %q", err.Message)
	}
	if !stderrors.Is(err, ErrMisshapenElement) {
		t.Error("expected match on ErrMisshapenElement")
	}
}

func TestAppError_InvalidArgument(t *testing.T) {
	err := InvalidArgument("step", "must not be zero")
	if err.Details["field"] != "step" {
		t.Errorf("expected field=step, got %v", err.Details["field"])
	}
	noField := InvalidArgument("", "bad")
	if _, ok := noField.Details["field"]; ok {
		t.Error("expected no 'field' key when field is empty")
	}
}

func TestAppError_WithCauseUnwrap(t *testing.T) {
	cause := stderrors.New("root")
	err := CallbackFailed("map", 4, cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
	if err.Details["index"] != 4 {
		t.Errorf("expected index=4, got %v", err.Details["index"])
	}
	if !strings.Contains(err.Error(), "cause: root") {
		t.Errorf("unexpected message %q", err.Error())
	}
	other := New(ErrCodeInternal, "x").WithCause(cause)
	if other.Unwrap() != cause {
		t.Error("Unwrap should return cause")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := New(ErrCodeInternal, "x").WithDetail("a", 1).WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error is not an AppError")
	}
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", Internal(nil)))
	if !ok || appErr.Code != ErrCodeInternal {
		t.Errorf("got (%v, %v)", appErr, ok)
	}
	if !IsAppError(Validation("v")) {
		t.Error("Validation should be an AppError")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"app error", EmptySequence("reduce"), ErrCodeEmptySequence},
		{"canceled", context.Canceled, ErrCodeCanceled},
		{"deadline", fmt.Errorf("pull: %w", context.DeadlineExceeded), ErrCodeCanceled},
		{"foreign", stderrors.New("user"), ErrCodeCallbackFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(tc.err); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
