package middleware

import (
	"net/http"

	perr "interestd/internal/platform/errors"
	"interestd/internal/platform/logger"
	pnet "interestd/internal/platform/net"
)

// AuthPort resolves the caller of a request
type AuthPort interface {
	Parse(r *http.Request) (userID string, role string, err error)
}

// Auth rejects requests p cannot resolve and stores the user and role on the
// context; a nil p lets everything through
func Auth(p AuthPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, role, err := p.Parse(r)
			if err != nil {
				fail(w, r, err)
				return
			}
			ctx := pnet.WithRole(pnet.WithUser(r.Context(), uid), role)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole admits authenticated callers holding one of roles
// Anonymous callers get 401, everyone else 403
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			switch {
			case pnet.UserID(ctx) == "":
				fail(w, r, perr.Unauthorizedf("missing bearer token"))
			case !pnet.HasRole(ctx, roles...):
				fail(w, r, perr.Forbiddenf("role %q may not access this resource", pnet.Role(ctx)))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
