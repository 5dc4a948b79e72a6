package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "github.com/reviewpulse/reviewpulse/internal/adapters/http_server"
	"github.com/reviewpulse/reviewpulse/internal/adapters/observability"
	redisad "github.com/reviewpulse/reviewpulse/internal/adapters/redis"
	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/shared"
	mysqlrepo "github.com/reviewpulse/reviewpulse/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
