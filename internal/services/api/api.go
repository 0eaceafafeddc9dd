// Package api provides the HTTP API for the application
package api

import (
	stdhttp "net/http"
	"time"

	"interestd/internal/core/phe"
	"interestd/internal/platform/config"
	"interestd/internal/platform/logger"
	phttp "interestd/internal/platform/net/http"
	"interestd/internal/platform/net/middleware"
	"interestd/internal/platform/store"
	tim "interestd/internal/platform/time"

	"interestd/internal/modkit"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/modkit/module"
	"interestd/internal/modkit/swaggerkit"

	feedmod "interestd/internal/services/api/feed/module"
	metamod "interestd/internal/services/api/meta/module"
	phemod "interestd/internal/services/api/phe/module"
	adminscoringmod "interestd/internal/services/api/scoring/module"

	engagementmod "interestd/internal/services/engagement/module"
	ingestmod "interestd/internal/services/ingest/module"
	interestmod "interestd/internal/services/interest/module"
	rankingmod "interestd/internal/services/ranking/module"
	replaymod "interestd/internal/services/replay/module"
	replaysvc "interestd/internal/services/replay/service"
	scoringmod "interestd/internal/services/scoring/module"
	taxonomymod "interestd/internal/services/taxonomy/module"
)

// Options are the API options
type Options struct {
	// Config is the root config; modules read their own prefixes from it
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
	// Keys is the resolved process key manager
	Keys *phe.Manager
	// Auth verifies bearer tokens for protected routes
	Auth middleware.AuthPort
	// Clock is optional and defaults to the wall clock
	Clock tim.Clock

	// CORSOrigins limits browser origins; empty admits any
	CORSOrigins []string

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mounted exposes background jobs the caller owns after Mount
type Mounted struct {
	Sweeper *replaysvc.Sweeper
}

// Mount builds every module and mounts the API onto the given router
func Mount(r phttp.Router, opt Options) Mounted {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		PG:    opt.Store.PG,
		CH:    opt.Store.CH,
		Keys:  opt.Keys,
		Clock: opt.Clock,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// service modules, leaves first, each fed the ports of the ones before it
	taxonomy := taxonomymod.New(deps)
	tags := module.MustPortsOf[taxonomymod.Ports](taxonomy).Resolver

	scoring := scoringmod.New(deps)
	weights := module.MustPortsOf[scoringmod.Ports](scoring)

	interest := interestmod.New(deps, modkit.WithPorts(interestmod.Needs{Tags: tags}))
	acc := module.MustPortsOf[interestmod.Ports](interest).Accumulator

	replay := replaymod.New(deps)
	engagement := engagementmod.New(deps)

	ingest := ingestmod.New(deps, modkit.WithPorts(ingestmod.Needs{
		Guard:       module.MustPortsOf[replaymod.Ports](replay).Guard,
		Weights:     weights.Reader,
		Accumulator: acc,
		Sink:        module.MustPortsOf[engagementmod.Ports](engagement).Sink,
	}))

	ranking := rankingmod.New(deps, modkit.WithPorts(rankingmod.Needs{Interests: acc, Tags: tags}))

	mods := []module.Module{
		taxonomy,
		scoring,
		interest,
		replay,
		engagement,
		ingest,
		ranking,
		metamod.New(deps),
		phemod.New(deps,
			modkit.WithPorts(phemod.Needs{
				Ingest: module.MustPortsOf[ingestmod.Ports](ingest).Ingest,
				Auth:   opt.Auth,
			}),
			modkit.WithMiddlewares(scoreThrottle(opt.Config)),
		),
		adminscoringmod.New(deps, modkit.WithPorts(adminscoringmod.Needs{Admin: weights.Admin, Auth: opt.Auth})),
		feedmod.New(deps, modkit.WithPorts(feedmod.Needs{
			Ranker: module.MustPortsOf[rankingmod.Ports](ranking).Ranker,
			Auth:   opt.Auth,
		})),
	}

	// Swagger, profiler, metrics
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	phttp.MountMetrics(r, "/metrics", opt.EnableMetrics, nil)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORSOrigins...), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	return Mounted{Sweeper: replay.Sweeper()}
}

// scoreThrottle bounds concurrent score ingestion; overflow gets 429 and the
// client drops the batch
func scoreThrottle(cfg config.Conf) func(stdhttp.Handler) stdhttp.Handler {
	c := cfg.Prefix("API_SCORE_")
	return middleware.Throttle(
		c.MayInt("INFLIGHT", 64),
		c.MayInt("BACKLOG", 256),
		c.MayDuration("BACKLOG_WAIT", 5*time.Second),
	)
}
