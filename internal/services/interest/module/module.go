// Package module wires the interest accumulator as a modkit module
package module

import (
	"interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/services/interest/domain"
	"interestd/internal/services/interest/repo"
	"interestd/internal/services/interest/service"
	taxonomy "interestd/internal/services/taxonomy/domain"
)

// Ports exposed by the interest module
type Ports struct {
	Accumulator domain.AccumulatorPort
}

// Needs declares the injected ports the accumulator consumes
type Needs struct {
	Tags taxonomy.Resolver
}

// Module implements modkit.Module for the accumulator
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the interest module; Needs must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(opts...)
	needs, _ := b.Ports.(Needs)
	if needs.Tags == nil {
		panic("interest module requires a Tags resolver (from services/taxonomy)")
	}
	if deps.Keys == nil {
		panic("interest module requires deps.Keys")
	}

	o := FromConfig(deps.Cfg)
	cfg := service.Config{
		Attempts:  o.CASAttempts,
		BaseDelay: o.CASBase,
		MaxDelay:  o.CASMax,
	}
	var svc *service.Accumulator
	if deps.PG != nil {
		svc = service.New(deps.PG, repo.NewPG(), deps.Keys, needs.Tags, cfg)
	} else {
		deps.Log.Warn().Msg("no postgres configured; interest entries are kept in memory")
		svc = service.NewWithStore(repo.NewMemory(deps.ClockOrReal()), deps.Keys, needs.Tags, cfg)
	}
	return &Module{deps: deps, ports: Ports{Accumulator: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "interest" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op; ingestion is served by services/api/phe
func (m *Module) MountRoutes(_ httpkit.Router) {}
