package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/reviewpulse/reviewpulse/internal/domain"
)

// BatchCollector exports several apps from one storefront. Apps are fetched
// with bounded concurrency but merged in input order so output files are
// deterministic; a failed app is logged and skipped, the batch continues.
type BatchCollector struct {
	collector *Collector
	workers   int64
}

func NewBatchCollector(c *Collector, workers int) *BatchCollector {
	if workers <= 0 {
		workers = 1
	}
	return &BatchCollector{collector: c, workers: int64(workers)}
}

func (b *BatchCollector) CollectApps(ctx context.Context, appIDs []string, country string, maxPerApp int) (domain.BatchResult, error) {
	results := make([]*domain.CollectResult, len(appIDs))
	sem := semaphore.NewWeighted(b.workers)
	var wg sync.WaitGroup

	for i, id := range appIDs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return domain.BatchResult{}, err
		}
		wg.Add(1)
		go func(i int, appID string) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := b.collector.CollectCountry(ctx, appID, country, maxPerApp)
			if err != nil {
				log.Warn().Str("app", appID).Err(err).Msg("batch: app skipped")
				return
			}
			log.Info().Str("app", appID).Str("title", res.App.Title).
				Int("reviews", len(res.Reviews)).Msg("batch: app collected")
			results[i] = &res
		}(i, id)
	}
	wg.Wait()

	out := domain.BatchResult{
		Summary: domain.BatchSummary{TotalApps: len(appIDs), Country: country},
		Apps:    []domain.App{},
		Reviews: []domain.Review{},
	}
	for i, res := range results {
		if res == nil {
			continue
		}
		out.Summary.SuccessfulApps++
		out.Apps = append(out.Apps, res.App)
		for _, rv := range res.Reviews {
			rv.AppID = appIDs[i]
			rv.AppName = res.App.Title
			out.Reviews = append(out.Reviews, rv)
		}
	}
	out.Summary.TotalReviews = len(out.Reviews)
	return out, nil
}
