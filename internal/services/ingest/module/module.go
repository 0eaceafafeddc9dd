// Package module wires ingestion as a modkit module
package module

import (
	"interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	engagement "interestd/internal/services/engagement/domain"
	"interestd/internal/services/ingest/domain"
	"interestd/internal/services/ingest/service"
	interest "interestd/internal/services/interest/domain"
	replay "interestd/internal/services/replay/domain"
	scoring "interestd/internal/services/scoring/domain"
)

// Ports exposed by the ingest module
type Ports struct {
	Ingest domain.IngestPort
}

// Needs declares the injected ports ingestion drives
type Needs struct {
	Guard       replay.GuardPort
	Weights     scoring.ReaderPort
	Accumulator interest.AccumulatorPort
	Sink        engagement.Sink
}

// Module implements modkit.Module for ingestion
type Module struct {
	ports Ports
}

// New constructs the ingest module; Needs must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(opts...)
	n, _ := b.Ports.(Needs)
	svc := service.New(service.Deps{
		Guard:       n.Guard,
		Weights:     n.Weights,
		Accumulator: n.Accumulator,
		Sink:        n.Sink,
		Clock:       deps.ClockOrReal(),
	})
	return &Module{ports: Ports{Ingest: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "ingest" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op; the HTTP surface is services/api/phe
func (m *Module) MountRoutes(_ httpkit.Router) {}
