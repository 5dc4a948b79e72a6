package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/reviewpulse/reviewpulse/internal/adapters/itunes"
	"github.com/reviewpulse/reviewpulse/internal/adapters/observability"
	redisad "github.com/reviewpulse/reviewpulse/internal/adapters/redis"
	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/shared"
	mysqlrepo "github.com/reviewpulse/reviewpulse/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.ITunesBase).
		Int("workers", cfg.Workers).
		Int("target", cfg.ReviewTarget).
		Strs("countries", cfg.Countries).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	client := itunes.New(cfg.ITunesBase, cfg.ITunesRPS)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	collector := app.NewCollector(client)
	ing := app.NewIngestionService(collector, repo, cache)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, id := range shared.PopularAppIDs {
		id := id

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(appID string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := ing.IngestApp(ctx, appID, cfg.Countries, cfg.ReviewTarget); err != nil {
				log.Warn().Str("id", appID).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Str("id", appID).Msg("ingest ok")
		}(id)
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
