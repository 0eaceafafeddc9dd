package httpkit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "interestd/internal/platform/errors"
	pnet "interestd/internal/platform/net"
	phttp "interestd/internal/platform/net/http"
)

type rankBody struct {
	Name string `json:"name" validate:"required"`
}

func serve(r Router, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)
	return rec
}

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

func TestJSON_ValidBodyReachesHandler(t *testing.T) {
	t.Parallel()
	r := newRouter()
	PostJSON(r, "/rank", func(_ *http.Request, in rankBody) (any, error) {
		return map[string]string{"echo": in.Name}, nil
	})
	rec := serve(r, http.MethodPost, "/rank", `{"name":"sports"}`, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"echo":"sports"`) {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}

func TestJSON_ValidationError(t *testing.T) {
	t.Parallel()
	r := newRouter()
	called := false
	PutJSON(r, "/rank", func(_ *http.Request, _ rankBody) (any, error) {
		called = true
		return nil, nil
	})
	rec := serve(r, http.MethodPut, "/rank", `{"name":""}`, nil)
	if called {
		t.Fatal("handler ran on invalid body")
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"field":"name"`) {
		t.Fatalf("got %d %s", rec.Code, rec.Body.String())
	}
}

func TestJSON_UnknownFieldRejected(t *testing.T) {
	t.Parallel()
	r := newRouter()
	PostJSON(r, "/rank", func(_ *http.Request, _ rankBody) (any, error) { return nil, nil })
	rec := serve(r, http.MethodPost, "/rank", `{"name":"a","extra":1}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCall_ErrorAndResponse(t *testing.T) {
	t.Parallel()
	r := newRouter()
	Get(r, "/missing", func(*http.Request) (any, error) {
		return nil, perr.New(perr.ErrorCodeNotFound, "no such user")
	})
	Get(r, "/accepted", func(*http.Request) (any, error) {
		return Response{Status: http.StatusAccepted, Body: map[string]int{"n": 1}}, nil
	})
	Get(r, "/boom", func(*http.Request) (any, error) { return nil, errors.New("boom") })

	if rec := serve(r, http.MethodGet, "/missing", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing = %d", rec.Code)
	}
	if rec := serve(r, http.MethodGet, "/accepted", "", nil); rec.Code != http.StatusAccepted {
		t.Fatalf("accepted = %d", rec.Code)
	}
	if rec := serve(r, http.MethodGet, "/boom", "", nil); rec.Code != http.StatusInternalServerError {
		t.Fatalf("boom = %d", rec.Code)
	}
}

func TestPort_Parse(t *testing.T) {
	t.Parallel()
	p := NewPortFunc(func(tok string) (string, string, error) {
		if tok != "good" {
			return "", "", errors.New("bad signature")
		}
		return "u1", pnet.RoleUser, nil
	})
	cases := []struct {
		name, header string
		ok           bool
	}{
		{"valid", "Bearer good", true},
		{"lower scheme", "bearer good", true},
		{"missing", "", false},
		{"no token", "Bearer ", false},
		{"wrong scheme", "Basic good", false},
		{"bad token", "Bearer nope", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			uid, role, err := p.Parse(req)
			if tc.ok {
				if err != nil || uid != "u1" || role != pnet.RoleUser {
					t.Fatalf("Parse = %q %q %v", uid, role, err)
				}
				return
			}
			if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
				t.Fatalf("err = %v, want unauthorized", err)
			}
		})
	}
}

func TestProtected_AndRoles(t *testing.T) {
	t.Parallel()
	p := NewPortFunc(func(tok string) (string, string, error) {
		switch tok {
		case "admin":
			return "a1", pnet.RoleAdmin, nil
		case "user":
			return "u1", pnet.RoleUser, nil
		}
		return "", "", errors.New("unknown")
	})
	r := newRouter()
	Get(r, "/open", func(*http.Request) (any, error) { return "ok", nil })
	Protected(r, p, func(pr Router) {
		Get(pr, "/me", func(req *http.Request) (any, error) { return User(req) })
		pr.Group(func(ar Router) {
			ar.Use(RequireRole(pnet.RoleAdmin))
			Get(ar, "/admin", func(*http.Request) (any, error) { return "ok", nil })
		})
	})

	cases := []struct {
		path, token string
		want        int
	}{
		{"/open", "", http.StatusOK},
		{"/me", "", http.StatusUnauthorized},
		{"/me", "user", http.StatusOK},
		{"/admin", "user", http.StatusForbidden},
		{"/admin", "admin", http.StatusOK},
	}
	for _, tc := range cases {
		hdr := map[string]string{}
		if tc.token != "" {
			hdr["Authorization"] = "Bearer " + tc.token
		}
		rec := serve(r, http.MethodGet, tc.path, "", hdr)
		if rec.Code != tc.want {
			t.Fatalf("%s as %q = %d, want %d", tc.path, tc.token, rec.Code, tc.want)
		}
	}
}

func TestUser_Unauthenticated(t *testing.T) {
	t.Parallel()
	_, err := User(httptest.NewRequest(http.MethodGet, "/", nil))
	if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("err = %v", err)
	}
}

func TestMountAPIV1_PrefixAndStack(t *testing.T) {
	t.Parallel()
	r := newRouter()
	MountAPIV1(r, CommonStack(), func(api Router) {
		Get(api, "/phe/public-key", func(*http.Request) (any, error) { return "pk", nil })
	})
	rec := serve(r, http.MethodGet, "/api/v1/phe/public-key", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("versioned route = %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Fatal("common stack did not run")
	}
	rec = serve(r, http.MethodGet, "/phe/public-key", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unversioned route = %d", rec.Code)
	}
}
