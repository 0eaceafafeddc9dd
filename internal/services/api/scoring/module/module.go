// Package module mounts the admin scoring endpoints
package module

import (
	modkit "interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/platform/net/middleware"
	scoringhttp "interestd/internal/services/api/scoring/http"
	scoring "interestd/internal/services/scoring/domain"
)

// Needs declares the injected ports
type Needs struct {
	Admin scoring.AdminPort
	Auth  middleware.AuthPort
}

// New constructs the admin scoring module under /admin
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("admin-scoring"), modkit.WithPrefix("/admin")}, opts...)...)
	needs, _ := b.Ports.(Needs)
	if needs.Admin == nil || needs.Auth == nil {
		panic("admin scoring module requires Admin and Auth ports")
	}
	return modkit.NewRoutes(b, func(r httpkit.Router) {
		scoringhttp.Register(r, needs.Admin, needs.Auth)
	})
}
