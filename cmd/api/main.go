package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/approvals"
	"flex_reviews/internal/adapters/hostaway"
	server "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// deps
	source := hostaway.NewFileSource(cfg.SourcePath)
	var store domain.ApprovalStore
	switch cfg.ApprovalsBackend {
	case "redis":
		store = approvals.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	default:
		store = approvals.NewFileStore(cfg.ApprovalsPath)
	}
	q := app.NewQueryService(source, store)
	a := app.NewApprovalService(store)

	// http
	srv := server.New(cfg.RateRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, A: a, Demo: server.DefaultDemoFixture()})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("source", cfg.SourcePath).
		Str("approvals", cfg.ApprovalsBackend).
		Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
