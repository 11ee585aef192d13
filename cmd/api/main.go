package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "sentiment_intel/internal/adapters/http_server"
	"sentiment_intel/internal/adapters/n8n"
	"sentiment_intel/internal/adapters/observability"
	redisad "sentiment_intel/internal/adapters/redis"
	"sentiment_intel/internal/app"
	"sentiment_intel/internal/domain"
	"sentiment_intel/internal/shared"
	"sentiment_intel/internal/storage/memory"
)

func main() {
	shared.LoadEnv()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// workflow client; the API still starts without one so per-request URL
	// overrides keep working
	var wf domain.WorkflowClient
	if cfg.WebhookURL != "" {
		cl, err := n8n.New(cfg.WebhookURL, cfg.WebhookTimeout, 1)
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.WebhookURL).Msg("configured webhook URL rejected")
		} else {
			wf = cl
		}
	}

	// deps
	store := memory.New()
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewAnalysisService(wf, store, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, WebhookTimeout: cfg.WebhookTimeout})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
