// Package module mounts the key metadata and score ingestion endpoints
package module

import (
	modkit "interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/platform/net/middleware"
	phehttp "interestd/internal/services/api/phe/http"
	ingest "interestd/internal/services/ingest/domain"
)

// Needs declares the injected ports; Keys come from deps
type Needs struct {
	Ingest ingest.IngestPort
	Auth   middleware.AuthPort
}

// New constructs the phe module under /phe
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("phe"), modkit.WithPrefix("/phe")}, opts...)...)
	needs, _ := b.Ports.(Needs)
	if deps.Keys == nil || needs.Ingest == nil || needs.Auth == nil {
		panic("phe module requires deps.Keys plus Ingest and Auth ports")
	}
	return modkit.NewRoutes(b, func(r httpkit.Router) {
		phehttp.Register(r, phehttp.Deps{Keys: deps.Keys, Ingest: needs.Ingest, Auth: needs.Auth})
	})
}
