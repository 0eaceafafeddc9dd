// @title         interestd API
// @version       0.1.0
// @description   Encrypted interest scoring and personalized ranking
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interestd/internal/core/phe"
	"interestd/internal/modkit/httpkit"
	"interestd/internal/platform/config"
	"interestd/internal/platform/logger"
	phttp "interestd/internal/platform/net/http"
	"interestd/internal/platform/store"
	"interestd/internal/platform/token"

	"interestd/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CH_")
	pheCfg := root.Prefix("PHE_")

	// bring up logging early
	l := logger.Get()

	// the key source is resolved once; a bad or missing key stops startup
	src := phe.SourceFromConfig(pheCfg)
	if c, ok := src.(phe.Configured); ok && c.Partial() {
		l.Warn().Msg("only one of PHE_PRIVATE_KEY_LAMBDA and PHE_PRIVATE_KEY_MU is set; running encrypt-only")
	}
	keys, err := phe.New(src, phe.Options{Version: pheCfg.MayInt("KEY_VERSION", 1)})
	if err != nil {
		l.Fatal().Err(err).Str("source", src.Kind()).Msg("phe key unavailable")
	}
	if keys.Source() == (phe.Generated{}).Kind() {
		l.Warn().Msg("using an ephemeral generated key; accumulated interests will not survive a restart")
	}
	l.Info().Str("source", keys.Source()).Bool("can_decrypt", keys.CanDecrypt()).Msg("phe key ready")

	signer, err := token.New(apiCfg.MustString("AUTH_SECRET"))
	if err != nil {
		l.Fatal().Err(err).Msg("auth secret")
	}

	// open the platform store (postgres + optional CH sink)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "interestd-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled: chCfg.MayBool("ENABLED", false),
				URL:     chCfg.MayString("DSN", ""),
				Role:    "api",
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	mounted := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Keys:           keys,
			Auth:           httpkit.NewPortFunc(signer.Parse),
			CORSOrigins:    apiCfg.MayList("CORS_ORIGINS"),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", false),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)
	mounted.Sweeper.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case err := <-errCh:
		if err != nil {
			l.Error().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		l.Error().Err(err).Msg("http shutdown")
	}
	mounted.Sweeper.Stop(shutCtx)
}
