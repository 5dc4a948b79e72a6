package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/reviewpulse/reviewpulse/internal/domain"
)

// IngestionService archives collected reviews, keeping the cache in step
// with the archive.
type IngestionService struct {
	collector *Collector
	repo      domain.ReviewRepository
	cache     domain.Cache
}

func NewIngestionService(c *Collector, r domain.ReviewRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{collector: c, repo: r, cache: cache}
}

// IngestApp collects up to target reviews for one app across the given
// storefronts and upserts the result. An app that no storefront could
// resolve is recorded as a miss and skipped; the caller's batch continues.
func (s *IngestionService) IngestApp(ctx context.Context, appID string, countries []string, target int) error {
	res, err := s.collector.Collect(ctx, appID, countries, target)
	if err != nil {
		return err
	}

	if res.App.ID == 0 {
		// every storefront failed to resolve metadata
		id, _ := strconv.ParseInt(appID, 10, 64)
		_ = s.repo.LogMiss(ctx, id, 404, "lookup")
		if s.cache != nil {
			s.invalidateApp(ctx, id)
			s.invalidateReviews(ctx, id)
		}
		log.Warn().Str("app", appID).Msg("no storefront resolved metadata, recorded miss")
		return nil
	}

	if err := s.repo.UpsertApp(ctx, res.App); err != nil {
		return fmt.Errorf("upsert app %s: %w", appID, err)
	}
	if len(res.Reviews) > 0 {
		if err := s.repo.UpsertReviews(ctx, res.App.ID, res.Reviews); err != nil {
			return fmt.Errorf("upsert reviews for %s: %w", appID, err)
		}
	}

	// Drop stale cache entries even when zero reviews came back.
	if s.cache != nil {
		s.invalidateApp(ctx, res.App.ID)
		s.invalidateReviews(ctx, res.App.ID)
	}

	log.Info().Str("app", appID).Int("reviews", len(res.Reviews)).
		Strs("countries", res.ExportInfo.CountriesChecked).Msg("app archived")
	return nil
}

func (s *IngestionService) invalidateApp(ctx context.Context, id int64) {
	_ = s.cache.Del(ctx, fmt.Sprintf("app:%d", id))
}

// invalidate the most common review cache variants
func (s *IngestionService) invalidateReviews(ctx context.Context, id int64) {
	for _, lim := range []int{50, 100, 200} {
		_ = s.cache.Del(ctx, fmt.Sprintf("reviews:%d:%d", id, lim))
	}
}
