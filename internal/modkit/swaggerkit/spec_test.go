package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "interestd/internal/platform/net/http"
)

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestDecorate(t *testing.T) {
	t.Parallel()
	in := `{"swagger":"2.0","paths":{"/phe/score":{"post":{"responses":{"400":{"description":"custom"}}}}}}`
	out, err := decorate([]byte(in), "/api/v1")
	if err != nil {
		t.Fatal(err)
	}
	doc := decode(t, out)
	if doc["openapi"] != "3.0.3" || doc["swagger"] != nil {
		t.Fatalf("version = %v / %v", doc["openapi"], doc["swagger"])
	}
	servers := doc["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	schemas := doc["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatal("error schema missing")
	}

	resps := doc["paths"].(map[string]any)["/phe/score"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	if resps["400"].(map[string]any)["description"] != "custom" {
		t.Fatal("documented response overwritten")
	}
	for _, code := range []string{"401", "500"} {
		if _, ok := resps[code]; !ok {
			t.Fatalf("default %s missing: %v", code, resps)
		}
	}
}

func TestDecorate_KeepsOAS30AndServers(t *testing.T) {
	t.Parallel()
	in := `{"openapi":"3.0.1","servers":[{"url":"https://interest.example"}]}`
	doc := decode(t, mustDecorate(t, in))
	if doc["openapi"] != "3.0.1" {
		t.Fatalf("openapi = %v", doc["openapi"])
	}
	if doc["servers"].([]any)[0].(map[string]any)["url"] != "https://interest.example" {
		t.Fatal("servers replaced")
	}
	if doc := decode(t, mustDecorate(t, `{"openapi":"3.1.0"}`)); doc["openapi"] != "3.0.3" {
		t.Fatalf("3.1 not lowered: %v", doc["openapi"])
	}
	if _, err := decorate([]byte("{"), "/"); err == nil {
		t.Fatal("broken doc accepted")
	}
}

func mustDecorate(t *testing.T, in string) []byte {
	t.Helper()
	out, err := decorate([]byte(in), "/api/v1")
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestMount(t *testing.T) {
	t.Parallel()
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("doc.json = %d %v", rec.Code, rec.Header())
	}
	served := decode(t, rec.Body.Bytes())
	if served["openapi"] != "3.0.3" {
		t.Fatal("served doc not decorated")
	}
	if _, ok := served["paths"].(map[string]any)["/phe/score"]; !ok {
		t.Fatal("generated paths missing")
	}

	off := phttp.AdaptChi(chi.NewRouter())
	Mount(off, false)
	rec = httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled doc.json = %d", rec.Code)
	}
}
