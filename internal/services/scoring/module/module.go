// Package module wires the scoring weights service as a modkit module
package module

import (
	"interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/services/scoring/domain"
	"interestd/internal/services/scoring/repo"
	"interestd/internal/services/scoring/service"
)

// Ports exposed by the scoring module
type Ports struct {
	Reader domain.ReaderPort
	Admin  domain.AdminPort
}

// Module implements modkit.Module for scoring weights
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the scoring module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	svc := service.New(deps.PG, repo.NewPG(), deps.ClockOrReal(), service.Config{CacheTTL: opts.CacheTTL})
	return &Module{deps: deps, ports: Ports{Reader: svc, Admin: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "scoring" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op; the admin API lives in services/api/scoring
func (m *Module) MountRoutes(_ httpkit.Router) {}
