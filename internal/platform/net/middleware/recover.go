package middleware

import (
	"net/http"
	"runtime/debug"

	perr "interestd/internal/platform/errors"
	"interestd/internal/platform/logger"
	pnet "interestd/internal/platform/net"
)

// Recover turns a handler panic into a logged stack and a JSON 500
// http.ErrAbortHandler is re-panicked so net/http can drop the connection
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			if id := pnet.RequestID(r.Context()); id != "" {
				w.Header().Set("X-Request-ID", id)
			}
			fail(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
