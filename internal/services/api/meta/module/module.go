// Package module mounts the meta endpoints
package module

import (
	modkit "interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	metahttp "interestd/internal/services/api/meta/http"
)

// ServiceName is reported by /meta/version and /meta/ready
const ServiceName = "interestd-api"

// New constructs the meta module under /meta; uptime counts from construction
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	clock := deps.ClockOrReal()
	md := metahttp.Deps{
		ServiceName: ServiceName,
		StartedAt:   clock.Now(),
		Clock:       clock,
	}
	// leave the interfaces nil rather than holding typed nils
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		md.PG = p
	}
	if deps.CH != nil {
		md.CH = deps.CH
	}
	if deps.Keys != nil {
		md.Keys = deps.Keys
	}
	return modkit.NewRoutes(b, func(r httpkit.Router) { metahttp.Register(r, md) })
}
