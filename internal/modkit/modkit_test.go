package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"interestd/internal/modkit/httpkit"
	phttp "interestd/internal/platform/net/http"
	kit "interestd/internal/platform/testkit"
	tim "interestd/internal/platform/time"
)

func TestBuild_LaterOptionsWin(t *testing.T) {
	t.Parallel()
	type needs struct{ tag string }
	b := Build(
		WithName("feed"), WithPrefix("/feed"),
		WithName("ranked-feed"),
		WithPorts(needs{tag: "a"}),
	)
	if b.Name != "ranked-feed" || b.Prefix != "/feed" {
		t.Fatalf("Build = %+v", b)
	}
	if n, ok := b.Ports.(needs); !ok || n.tag != "a" {
		t.Fatalf("Ports = %#v", b.Ports)
	}
}

func TestRoutes_MountsUnderPrefixWithMiddleware(t *testing.T) {
	t.Parallel()
	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "feed")
			next.ServeHTTP(w, r)
		})
	}
	b := Build(WithName("feed"), WithPrefix("feed/"), WithMiddlewares(tagged))
	m := NewRoutes(b, func(r httpkit.Router) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	})
	if m.Prefix() != "/feed" || m.Name() != "feed" || m.Ports() != nil {
		t.Fatalf("module = %q %q %v", m.Name(), m.Prefix(), m.Ports())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed/ping", nil))
	if rec.Code != http.StatusNoContent || rec.Header().Get("X-Module") != "feed" {
		t.Fatalf("got %d %v", rec.Code, rec.Header())
	}
}

func TestNewRoutes_RequiresNameAndPrefix(t *testing.T) {
	t.Parallel()
	kit.MustPanic(t, func() { NewRoutes(Build(WithPrefix("/x")), nil) })
	kit.MustPanic(t, func() { NewRoutes(Build(WithName("x")), nil) })
}

func TestDeps_ClockOrReal(t *testing.T) {
	t.Parallel()
	var d Deps
	if d.ClockOrReal() == nil {
		t.Fatal("zero Deps should fall back to the wall clock")
	}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d.Clock = tim.NewFake(start)
	if got := d.ClockOrReal().Now(); !got.Equal(start) {
		t.Fatalf("expected injected clock, got %v", got)
	}
}
