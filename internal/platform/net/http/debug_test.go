package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	phttp "interestd/internal/platform/net/http"
)

func get(r phttp.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()
	on := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(on, "/debug", true)
	if rec := get(on, "/debug/pprof/cmdline"); rec.Code != http.StatusOK {
		t.Fatalf("enabled cmdline = %d", rec.Code)
	}

	off := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(off, "/debug", false)
	if rec := get(off, "/debug/pprof/cmdline"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled cmdline = %d", rec.Code)
	}
}

func TestMountMetrics(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	accepted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "interestd", Name: "probe_items_total", Help: "probe",
	})
	reg.MustRegister(accepted)
	accepted.Add(3)

	on := phttp.AdaptChi(chi.NewRouter())
	phttp.MountMetrics(on, "/metrics", true, reg)
	rec := get(on, "/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "interestd_probe_items_total 3") {
		t.Fatalf("metrics = %d %s", rec.Code, rec.Body.String())
	}

	off := phttp.AdaptChi(chi.NewRouter())
	phttp.MountMetrics(off, "/metrics", false, reg)
	if rec := get(off, "/metrics"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled metrics = %d", rec.Code)
	}
}
