package testutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	apperrors "github.com/kbukum/iterx/errors"
)

// Equal fails the test when got and want differ. NaNs compare equal.
func Equal[T any](t testing.TB, got, want T, opts ...cmp.Option) {
	t.Helper()
	opts = append(opts, cmpopts.EquateNaNs(), cmpopts.EquateEmpty())
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// NoError stops the test when err is non-nil.
func NoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ErrorIs fails the test unless err matches target.
func ErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("expected error matching %v, got %v", target, err)
	}
}

// ErrorCode fails the test unless err classifies as code.
func ErrorCode(t testing.TB, err error, code apperrors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Errorf("expected %s error, got nil", code)
		return
	}
	if got := apperrors.CodeOf(err); got != code {
		t.Errorf("expected code %s, got %s (%v)", code, got, err)
	}
}
