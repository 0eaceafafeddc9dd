package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CORS admits browser clients from origins (any origin when empty) with the
// headers the score and rank calls send
func CORS(origins ...string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	})
}

// Throttle allows limit requests in flight and queues backlog more for up
// to wait; the rest get 429 with Retry-After set to wait
func Throttle(limit, backlog int, wait time.Duration) func(http.Handler) http.Handler {
	after := wait.Round(time.Second)
	if after < time.Second {
		after = time.Second
	}
	return chimw.ThrottleWithOpts(chimw.ThrottleOpts{
		Limit:          limit,
		BacklogLimit:   backlog,
		BacklogTimeout: wait,
		StatusCode:     http.StatusTooManyRequests,
		RetryAfterFn:   func(bool) time.Duration { return after },
	})
}
