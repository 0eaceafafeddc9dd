package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"interestd/internal/core/phe"
	"interestd/internal/modkit/httpkit"
	perr "interestd/internal/platform/errors"
	phttp "interestd/internal/platform/net/http"
	"interestd/internal/services/ingest/domain"
	replay "interestd/internal/services/replay/domain"
)

var (
	keysOnce sync.Once
	keys     *phe.Manager
)

func testKeys(t *testing.T) *phe.Manager {
	t.Helper()
	keysOnce.Do(func() {
		m, err := phe.New(phe.Generated{Bits: 256}, phe.Options{MinBits: 256, Version: 2})
		if err != nil {
			panic(err)
		}
		keys = m
	})
	return keys
}

type fakeIngest struct {
	mu    sync.Mutex
	user  string
	items []domain.Item
	resp  domain.Response
	err   error
}

func (f *fakeIngest) Ingest(_ context.Context, user string, items []domain.Item) (domain.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user, f.items = user, items
	return f.resp, f.err
}

// tokens are "<user>:<role>"
func testAuth() *httpkit.Port {
	return httpkit.NewPortFunc(func(tok string) (string, string, error) {
		u, role, ok := strings.Cut(tok, ":")
		if !ok {
			return "", "", perr.Unauthorizedf("bad token")
		}
		return u, role, nil
	})
}

func newServer(t *testing.T, ing *fakeIngest) stdhttp.Handler {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), Deps{Keys: testKeys(t), Ingest: ing, Auth: testAuth()})
	return mux
}

func do(h stdhttp.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestPublicKey_NoStoreAndPublicFieldsOnly(t *testing.T) {
	t.Parallel()
	h := newServer(t, &fakeIngest{})
	rec, env := do(h, stdhttp.MethodGet, "/public-key", "", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q", got)
	}
	data, _ := env["data"].(map[string]any)
	if len(data) != 4 || data["n"] != testKeys(t).Metadata().N || data["version"] != float64(2) || data["generated"] != true {
		t.Fatalf("data = %v", data)
	}
}

func TestScore_RequiresBearer(t *testing.T) {
	t.Parallel()
	ing := &fakeIngest{}
	rec, _ := do(newServer(t, ing), stdhttp.MethodPost, "/score", "", `{"articleId":"a1","events":{"open":true}}`)
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if ing.user != "" {
		t.Fatalf("ingest should not run")
	}
}

func TestScore_SingleItemPassesThroughAsBatchOfOne(t *testing.T) {
	t.Parallel()
	ing := &fakeIngest{resp: domain.Response{OK: true, Updated: 2, Items: []domain.ItemResult{{ArticleID: "a1", Status: domain.StatusApplied, Updated: 2}}}}
	rec, env := do(newServer(t, ing), stdhttp.MethodPost, "/score", "u-1:user",
		`{"articleId":"a1","events":{"open":true,"read":true},"nonce":"n-12345678","ts":1740830400000}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if ing.user != "u-1" || len(ing.items) != 1 || ing.items[0].ArticleID != "a1" || !ing.items[0].Events.Read {
		t.Fatalf("ingest got user=%q items=%+v", ing.user, ing.items)
	}
	data, _ := env["data"].(map[string]any)
	if data["ok"] != true || data["updated"] != float64(2) {
		t.Fatalf("data = %v", data)
	}
}

func TestScore_ValidationFailures(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name, body, field string
	}{
		{"both forms", `{"articleId":"a1","events":{},"batch":[{"articleId":"a2","events":{}}]}`, "batch"},
		{"no article", `{"events":{"open":true}}`, "articleId"},
		{"short nonce", `{"articleId":"a1","events":{},"nonce":"abc"}`, "nonce"},
		{"blank nonce", `{"articleId":"a1","events":{},"nonce":"        "}`, "nonce"},
		{"batch nonce of tabs", `{"batch":[{"articleId":"a2","events":{},"nonce":"abc\t\t\t\t\t"}]}`, "batch[0].nonce"},
		{"negative ts", `{"articleId":"a1","events":{},"ts":-1}`, "ts"},
		{"batch item missing events", `{"batch":[{"articleId":"a2"}]}`, "batch[0].events"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ing := &fakeIngest{}
			rec, env := do(newServer(t, ing), stdhttp.MethodPost, "/score", "u-1:user", tc.body)
			if rec.Code != stdhttp.StatusBadRequest {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
			}
			if env["field"] != tc.field {
				t.Fatalf("field = %v want %s", env["field"], tc.field)
			}
			if ing.user != "" {
				t.Fatalf("ingest should not run on invalid input")
			}
		})
	}
}

func TestScore_UnknownFieldRejected(t *testing.T) {
	t.Parallel()
	rec, _ := do(newServer(t, &fakeIngest{}), stdhttp.MethodPost, "/score", "u-1:user",
		`{"articleId":"a1","events":{},"userId":"someone-else"}`)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestScore_ReplayIsConflict(t *testing.T) {
	t.Parallel()
	ing := &fakeIngest{err: replay.ErrReplayRejected}
	rec, env := do(newServer(t, ing), stdhttp.MethodPost, "/score", "u-1:user",
		`{"articleId":"a1","events":{"open":true},"nonce":"n-12345678"}`)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if env["data"] != nil {
		t.Fatalf("replay response should carry no data: %v", env)
	}
}
