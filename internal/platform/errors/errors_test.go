package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus_Mapping(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{Validationf("weights.open out of range"), http.StatusBadRequest},
		{JSONErrf("bad body"), http.StatusBadRequest},
		{New(ErrorCodeConflict, "nonce replayed"), http.StatusConflict},
		{Unauthorizedf("missing bearer"), http.StatusUnauthorized},
		{Forbiddenf("trainer may not write weights"), http.StatusForbidden},
		{Unavailablef("pg down"), http.StatusServiceUnavailable},
		{New(ErrorCodeKeyUnavailable, "no private key"), http.StatusServiceUnavailable},
		{InvalidArgf("tag index negative"), http.StatusUnprocessableEntity},
		{Configf("PHE_PUBLIC_KEY_N missing"), http.StatusInternalServerError},
		{stderrs.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d want %d", tc.err, got, tc.want)
		}
	}
}

func TestWrap_ChainAndCode(t *testing.T) {
	t.Parallel()
	cause := stderrs.New("connection reset")
	err := fmt.Errorf("ingest: %w", Wrap(cause, ErrorCodeUnavailable, "replay: claim nonce"))

	if !IsCode(err, ErrorCodeUnavailable) {
		t.Fatalf("code lost through fmt wrapping: %v", CodeOf(err))
	}
	if Root(err) != cause {
		t.Fatalf("Root = %v", Root(err))
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("errors.Is should reach the cause")
	}
	if got := err.Error(); got != "ingest: replay: claim nonce: connection reset" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestWithField_CopiesAndKeepsIdentity(t *testing.T) {
	t.Parallel()
	base := Validationf("nonce too short")
	tagged := WithField(base, "nonce")

	if e, _ := As(base); e.Field() != "" {
		t.Fatalf("original mutated")
	}
	if !stderrs.Is(tagged, base) {
		t.Fatalf("copy should still match the original")
	}
	w := WireFrom(tagged)
	if w.Field != "nonce" || w.Code != ErrorCodeValidation || w.Message != "nonce too short" {
		t.Fatalf("wire = %+v", w)
	}

	plain := stderrs.New("x")
	if WithField(plain, "f") != plain {
		t.Fatalf("foreign errors pass through")
	}
}

func TestWireFrom_ForeignAndNil(t *testing.T) {
	t.Parallel()
	if (WireFrom(nil) != Wire{}) {
		t.Fatalf("nil should give zero wire")
	}
	w := WireFrom(stderrs.New("boom"))
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("wire = %+v", w)
	}
}

func TestErrorCode_String(t *testing.T) {
	t.Parallel()
	if got := ErrorCodeConflict.String(); got != "conflict" {
		t.Fatalf("String = %q", got)
	}
	if got := ErrorCode(999).String(); got != "code(999)" {
		t.Fatalf("String = %q", got)
	}
	if got := HTTPStatus(New(ErrorCode(999), "future")); got != http.StatusInternalServerError {
		t.Fatalf("unknown code status = %d", got)
	}
}
