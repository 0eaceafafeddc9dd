package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"interestd/internal/modkit/httpkit"
	perr "interestd/internal/platform/errors"
	phttp "interestd/internal/platform/net/http"
	"interestd/internal/services/ranking/domain"
)

// reverseRanker reverses the input so reordering is visible
type reverseRanker struct {
	user   string
	ranked bool
}

func (f *reverseRanker) Rank(_ context.Context, user string, in []domain.Candidate) ([]domain.Candidate, bool) {
	f.user = user
	if !f.ranked {
		return in, false
	}
	out := make([]domain.Candidate, len(in))
	for i := range in {
		out[len(in)-1-i] = in[i]
	}
	return out, true
}

func newServer(rk *reverseRanker) stdhttp.Handler {
	mux := chi.NewRouter()
	auth := httpkit.NewPortFunc(func(tok string) (string, string, error) {
		if tok == "" || strings.Contains(tok, " ") {
			return "", "", perr.Unauthorizedf("bad token")
		}
		return tok, "user", nil
	})
	Register(phttp.AdaptChi(mux), rk, auth)
	return mux
}

type envelope struct {
	Data  RankOutput `json:"data"`
	Field string     `json:"field"`
}

func post(h stdhttp.Handler, token, body string) (int, envelope) {
	req := httptest.NewRequest(stdhttp.MethodPost, "/rank", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec.Code, env
}

const threeCandidates = `{"candidates":[
	{"id":"a","createdAt":"2025-03-01T00:00:00Z"},
	{"id":"b","createdAt":"2025-03-02T00:00:00Z"},
	{"id":"c","createdAt":"2025-03-03T00:00:00Z"}]`

func TestRank_ReordersForCaller(t *testing.T) {
	t.Parallel()
	rk := &reverseRanker{ranked: true}
	code, env := post(newServer(rk), "u-9", threeCandidates+`}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if rk.user != "u-9" || !env.Data.Ranked {
		t.Fatalf("user=%q ranked=%v", rk.user, env.Data.Ranked)
	}
	got := []string{env.Data.Items[0].ID, env.Data.Items[1].ID, env.Data.Items[2].ID}
	if strings.Join(got, ",") != "c,b,a" {
		t.Fatalf("order = %v", got)
	}
}

func TestRank_LimitAndFallback(t *testing.T) {
	t.Parallel()
	code, env := post(newServer(&reverseRanker{}), "u-9", threeCandidates+`,"limit":2}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if env.Data.Ranked || len(env.Data.Items) != 2 || env.Data.Items[0].ID != "a" {
		t.Fatalf("fallback = %+v", env.Data)
	}
}

func TestRank_Rejects(t *testing.T) {
	t.Parallel()
	h := newServer(&reverseRanker{ranked: true})
	if code, _ := post(h, "", threeCandidates+`}`); code != stdhttp.StatusUnauthorized {
		t.Fatalf("anonymous status = %d", code)
	}
	code, env := post(h, "u-9", `{"candidates":[{"id":"","createdAt":"2025-03-01T00:00:00Z"}]}`)
	if code != stdhttp.StatusBadRequest || env.Field != "candidates[0].id" {
		t.Fatalf("status = %d field = %q", code, env.Field)
	}
	if code, _ := post(h, "u-9", `{"candidates":[]}`); code != stdhttp.StatusBadRequest {
		t.Fatalf("empty candidates status = %d", code)
	}
}
