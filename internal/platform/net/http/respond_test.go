package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "interestd/internal/platform/errors"
	pnet "interestd/internal/platform/net"
	phttp "interestd/internal/platform/net/http"
)

func call(t *testing.T, resp phttp.Response) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "req-7"))
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response { return resp })(rec, req)
	var env phttp.Envelope
	if rec.Code != http.StatusNoContent {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestHandle_OK(t *testing.T) {
	t.Parallel()
	rec, env := call(t, phttp.OK(map[string]string{"n": "256"}))
	if rec.Code != http.StatusOK || env.StatusCode != http.StatusOK || env.RequestID != "req-7" {
		t.Fatalf("got %d %+v", rec.Code, env)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestHandle_ErrorUsesCodeStatus(t *testing.T) {
	t.Parallel()
	rec, env := call(t, phttp.Error(perr.New(perr.ErrorCodeConflict, "nonce already used")))
	if rec.Code != http.StatusConflict || env.Code != perr.ErrorCodeConflict || env.Error == "" {
		t.Fatalf("got %d %+v", rec.Code, env)
	}
}

func TestHandle_StatusHeadersAndNoContent(t *testing.T) {
	t.Parallel()
	rec, env := call(t, phttp.Response{
		Status: http.StatusAccepted,
		Body:   "queued",
		Header: http.Header{"Retry-After": {"3"}},
	})
	if rec.Code != http.StatusAccepted || env.Data != "queued" || rec.Header().Get("Retry-After") != "3" {
		t.Fatalf("got %d %+v %v", rec.Code, env, rec.Header())
	}

	rec, _ = call(t, phttp.Response{Status: http.StatusNoContent})
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content = %d %q", rec.Code, rec.Body.String())
	}
}
