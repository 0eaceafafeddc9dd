package httpkit

import (
	"net/http"
	"strings"

	perr "interestd/internal/platform/errors"
	pnet "interestd/internal/platform/net"
	"interestd/internal/platform/net/middleware"
)

// TokenFunc verifies a raw bearer token and returns the user id and role it carries
type TokenFunc func(token string) (userID string, role string, err error)

// Port implements middleware.AuthPort over the Authorization header
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port around a token verifier
func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// Parse reads "Bearer <token>" (scheme is case insensitive) and verifies the token
// Every failure is a 401 without detail
func (p *Port) Parse(r *http.Request) (string, string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const scheme = "bearer"
	if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return "", "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(scheme):])
	if raw == "" {
		return "", "", perr.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", "", perr.Unauthorizedf("invalid bearer token")
	}
	uid, role, err := p.parse(raw)
	if err != nil || uid == "" {
		return "", "", perr.Unauthorizedf("invalid bearer token")
	}
	return uid, role, nil
}

// User returns the authenticated user id
func User(r *http.Request) (string, error) {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return uid, nil
	}
	return "", perr.Unauthorizedf("missing bearer token")
}

// RequireRole gates a group to callers holding one of roles
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return middleware.RequireRole(roles...)
}

// Protected mounts fn's routes behind bearer auth
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(middleware.Auth(p))
		fn(gr)
	})
}
