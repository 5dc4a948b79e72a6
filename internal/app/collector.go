package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/reviewpulse/reviewpulse/internal/adapters/observability"
	"github.com/reviewpulse/reviewpulse/internal/domain"
)

// Collector assembles deduplicated, target-bounded review sets for one app,
// optionally falling back across storefronts.
type Collector struct {
	store domain.StoreClient
}

func NewCollector(store domain.StoreClient) *Collector {
	return &Collector{store: store}
}

// pairResult carries the two halves of one storefront fetch. The halves are
// independent: a failed lookup does not invalidate feed data and vice versa.
type pairResult struct {
	app     domain.App
	appErr  error
	reviews []domain.Review
	feedErr error
}

func (c *Collector) fetchPair(ctx context.Context, appID, country string) pairResult {
	var pr pairResult
	var g errgroup.Group
	g.Go(func() error {
		env, err := c.store.Lookup(ctx, appID)
		if err != nil {
			pr.appErr = err
			return nil
		}
		pr.app, pr.appErr = appFromLookup(env)
		return nil
	})
	g.Go(func() error {
		raw, err := c.store.ReviewsFeed(ctx, appID, country)
		if err != nil {
			pr.feedErr = err
			return nil
		}
		pr.reviews = NormalizeFeed(raw)
		return nil
	})
	_ = g.Wait()
	return pr
}

// CollectCountry fetches one app's metadata and reviews from a single
// storefront. A lookup failure is fatal; a feed failure degrades to zero
// reviews. Reviews beyond maxReviews are dropped in feed order.
func (c *Collector) CollectCountry(ctx context.Context, appID, country string, maxReviews int) (domain.CollectResult, error) {
	pr := c.fetchPair(ctx, appID, country)
	if pr.appErr != nil {
		return domain.CollectResult{}, fmt.Errorf("lookup app %s: %w", appID, pr.appErr)
	}
	if pr.feedErr != nil {
		log.Warn().Str("app", appID).Str("country", country).Err(pr.feedErr).Msg("review feed fetch failed")
	}

	total := len(pr.reviews)
	reviews := pr.reviews
	if maxReviews > 0 && len(reviews) > maxReviews {
		reviews = reviews[:maxReviews]
	}
	observability.ObserveCollected(country, len(reviews))

	return domain.CollectResult{
		App:     pr.app,
		Reviews: reviews,
		ExportInfo: domain.ExportInfo{
			TotalReviews:    total,
			ExportedReviews: len(reviews),
			Country:         country,
			AppID:           appID,
		},
	}, nil
}

// Collect iterates storefronts in the given order until the accumulated
// review count reaches target or the list is exhausted. Each country's
// metadata and feed are fetched concurrently; countries are strictly
// sequential because dedup runs against the accumulated set.
//
// App metadata is first-write-wins across countries. Reviews are
// deduplicated on the (author, content, date) tuple and stamped with the
// country that first produced them. The final slice is truncated to target
// in accumulation order.
func (c *Collector) Collect(ctx context.Context, appID string, countries []string, target int) (domain.CollectResult, error) {
	seen := make(map[string]struct{})
	var all []domain.Review
	var meta domain.App
	metaSet := false
	var checked []string

	for _, country := range countries {
		if len(all) >= target {
			break
		}
		if err := ctx.Err(); err != nil {
			return domain.CollectResult{}, err
		}
		checked = append(checked, country)
		log.Info().Str("app", appID).Str("country", country).Msg("fetching storefront")

		pr := c.fetchPair(ctx, appID, country)
		if pr.appErr != nil {
			log.Warn().Str("app", appID).Str("country", country).Err(pr.appErr).Msg("app lookup failed")
		} else if !metaSet {
			meta = pr.app
			metaSet = true
		}
		if pr.feedErr != nil {
			log.Warn().Str("app", appID).Str("country", country).Err(pr.feedErr).Msg("review feed fetch failed")
		}

		added := 0
		for _, rv := range pr.reviews {
			k := rv.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			rv.Country = country
			all = append(all, rv)
			added++
		}
		observability.ObserveCollected(country, added)
		log.Info().Str("country", country).Int("added", added).Int("total", len(all)).Msg("storefront merged")
	}

	final := all
	if len(final) > target {
		final = final[:target]
	}
	return domain.CollectResult{
		App:     meta,
		Reviews: final,
		ExportInfo: domain.ExportInfo{
			TotalReviewsFound: len(all),
			ExportedReviews:   len(final),
			TargetReviews:     target,
			AppID:             appID,
			CountriesChecked:  checked,
		},
	}, nil
}
