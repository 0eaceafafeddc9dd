// Package testkit holds assertions shared across package tests
package testkit

import (
	"strings"
	"testing"
)

// MustPanic fails the test unless fn panics and returns what it panicked with
func MustPanic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustContain fails the test unless out contains want; out is logged in full
func MustContain(t testing.TB, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("missing %q in output:\n%s", want, out)
	}
}
