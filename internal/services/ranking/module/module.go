// Package module wires the relevance ranker as a modkit module
package module

import (
	"interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/services/ranking/domain"
	"interestd/internal/services/ranking/service"
	taxonomy "interestd/internal/services/taxonomy/domain"
)

// Ports exposed by the ranking module
type Ports struct {
	Ranker domain.RankerPort
}

// Needs declares the injected ports the ranker consumes
type Needs struct {
	Interests domain.InterestReader
	Tags      taxonomy.Resolver
}

// Module implements modkit.Module for ranking
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the ranking module; Needs must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(opts...)
	needs, _ := b.Ports.(Needs)
	if needs.Interests == nil || needs.Tags == nil {
		panic("ranking module requires Interests and Tags ports")
	}
	o := FromConfig(deps.Cfg)
	svc := service.New(deps.Keys, needs.Interests, needs.Tags, service.Config{
		NearTie:       o.NearTie,
		MaxCandidates: o.MaxCandidates,
	})
	return &Module{deps: deps, ports: Ports{Ranker: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "ranking" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op; the feed API lives in services/api/feed
func (m *Module) MountRoutes(_ httpkit.Router) {}
