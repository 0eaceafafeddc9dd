// Package module wires the tag resolver as a modkit module
package module

import (
	"interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/services/taxonomy/domain"
	"interestd/internal/services/taxonomy/repo"
	"interestd/internal/services/taxonomy/service"
)

// Ports exposed by the taxonomy module
type Ports struct {
	Resolver domain.Resolver
}

// Module implements modkit.Module for tag resolution
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the taxonomy module over deps.PG
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG())
	return &Module{deps: deps, ports: Ports{Resolver: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "taxonomy" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op: taxonomy editing is owned elsewhere
func (m *Module) MountRoutes(_ httpkit.Router) {}
