// Package middleware holds the request middleware the API stack is built from:
// auth and role gates, panic recovery, CORS, score throttling and access logs
package middleware

import (
	"encoding/json"
	"net/http"

	pnet "interestd/internal/platform/net"
)

// fail writes err as the standard JSON envelope
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
