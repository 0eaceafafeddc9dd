// Package module mounts the personalized feed ranking endpoint
package module

import (
	modkit "interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/platform/net/middleware"
	feedhttp "interestd/internal/services/api/feed/http"
	ranking "interestd/internal/services/ranking/domain"
)

// Needs declares the injected ports
type Needs struct {
	Ranker ranking.RankerPort
	Auth   middleware.AuthPort
}

// New constructs the feed module under /feed
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("feed"), modkit.WithPrefix("/feed")}, opts...)...)
	needs, _ := b.Ports.(Needs)
	if needs.Ranker == nil || needs.Auth == nil {
		panic("feed module requires Ranker and Auth ports")
	}
	return modkit.NewRoutes(b, func(r httpkit.Router) {
		feedhttp.Register(r, needs.Ranker, needs.Auth)
	})
}
