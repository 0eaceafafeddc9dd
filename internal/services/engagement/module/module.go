// Package module wires the engagement sink as a modkit module
package module

import (
	"interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/services/engagement/domain"
	"interestd/internal/services/engagement/service"
)

// Ports exposed by the engagement module
type Ports struct {
	Sink domain.Sink
}

// Module implements modkit.Module for the engagement sink
type Module struct {
	ports Ports
}

// New picks the clickhouse sink when deps.CH is set and the no-op sink otherwise
func New(deps modkit.Deps) *Module {
	var sink domain.Sink = service.Nop{}
	if deps.CH != nil {
		sink = service.NewCH(deps.CH)
	}
	return &Module{ports: Ports{Sink: sink}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "engagement" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op
func (m *Module) MountRoutes(_ httpkit.Router) {}
