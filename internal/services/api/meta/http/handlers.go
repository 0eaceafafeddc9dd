// Package http serves the meta endpoints: liveness, readiness with
// dependency probes, build info and uptime
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"interestd/internal/core/version"
	"interestd/internal/modkit/httpkit"
	tim "interestd/internal/platform/time"
)

// Pinger is a backend readiness probe
type Pinger interface {
	Ping(stdctx.Context) error
}

// KeyInfo is the part of the key manager readiness reports
type KeyInfo interface {
	Source() string
	CanDecrypt() bool
}

// Deps are the handler dependencies; nil backends report as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          Pinger
	CH          Pinger
	Keys        KeyInfo
	Clock       tim.Clock
}

// probeTimeout bounds each readiness ping
const probeTimeout = 2 * time.Second

type handlers struct {
	deps Deps
}

// Register mounts health, ready, version and service
func Register(r httpkit.Router, d Deps) {
	if d.Clock == nil {
		d.Clock = tim.Real()
	}
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"interestd-api"`
	Started string `json:"started" example:"2025-03-01T12:00:00Z"`
	Now     string `json:"now"     example:"2025-03-01T12:05:00Z"`
}

// ReadyCheck is one backend probe; Status is ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok, degraded or fail plus the probes behind it
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Keys   KeyStatus    `json:"keys"`
	Now    string       `json:"now"    example:"2025-03-01T12:05:00Z"`
}

// KeyStatus reports the key source; CanDecrypt false means ranking falls back to recency
type KeyStatus struct {
	Source     string `json:"source"     example:"configured"`
	CanDecrypt bool   `json:"canDecrypt" example:"true"`
}

// ServiceResponse is name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"interestd-api"`
	Started string `json:"started" example:"2025-03-01T12:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=HealthResponse}
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(h.deps.Clock.Now()),
	}, nil
}

func probe(ctx stdctx.Context, name string, p Pinger) ReadyCheck {
	if p == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	ctx, cancel := stdctx.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// @Summary Readiness with backend probes and key status
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=ReadyResponse}
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	pg := probe(r.Context(), "pg", h.deps.PG)
	ch := probe(r.Context(), "ch", h.deps.CH)

	// postgres is required, clickhouse and its absence are not
	status := "ok"
	switch {
	case h.deps.Keys == nil, pg.Status == "fail", ch.Status == "fail":
		status = "fail"
	case pg.Status == "skipped":
		status = "degraded"
	}

	resp := ReadyResponse{
		Status: status,
		Checks: []ReadyCheck{pg, ch},
		Now:    stamp(h.deps.Clock.Now()),
	}
	if h.deps.Keys != nil {
		resp.Keys = KeyStatus{Source: h.deps.Keys.Source(), CanDecrypt: h.deps.Keys.CanDecrypt()}
	}
	return resp, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=version.BuildInfo}
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=ServiceResponse}
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(h.deps.Clock.Now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}
