// Package module wires the replay guard and its sweeper as a modkit module
package module

import (
	"interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/services/replay/domain"
	"interestd/internal/services/replay/repo"
	"interestd/internal/services/replay/service"
)

// Ports exposed by the replay module
type Ports struct {
	Guard domain.GuardPort
}

// Module implements modkit.Module for replay protection
type Module struct {
	deps    modkit.Deps
	ports   Ports
	sweeper *service.Sweeper
}

// New constructs the replay module; a bad sweep schedule panics at startup
func New(deps modkit.Deps) *Module {
	o := FromConfig(deps.Cfg)

	var st domain.Store = repo.NewMemory()
	if o.Store == "pg" {
		if deps.PG == nil {
			panic("replay module: REPLAY_STORE=pg requires Postgres")
		}
		st = repo.NewPG().Bind(deps.PG)
	}

	g := service.New(st, deps.ClockOrReal(), o.TTL)
	sw, err := service.NewSweeper(g, o.SweepCron)
	if err != nil {
		panic(err)
	}
	return &Module{deps: deps, ports: Ports{Guard: g}, sweeper: sw}
}

// Sweeper returns the expiry sweeper; the caller starts and stops it
func (m *Module) Sweeper() *service.Sweeper { return m.sweeper }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "replay" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op
func (m *Module) MountRoutes(_ httpkit.Router) {}
