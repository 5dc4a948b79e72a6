package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reviewpulse/reviewpulse/internal/domain"
)

type QueryService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetApp(ctx context.Context, id int64) (domain.App, error) {
	key := fmt.Sprintf("app:%d", id)
	var a domain.App
	if ok, _ := s.cache.Get(ctx, key, &a); ok {
		return a, nil
	}
	a, err := s.repo.GetApp(ctx, id)
	if err != nil {
		return domain.App{}, err
	}
	_ = s.cache.Set(ctx, key, a, int(s.cacheTTL.Seconds()))
	return a, nil
}

func (s *QueryService) ListReviews(ctx context.Context, id int64, limit int) ([]domain.ArchivedReview, error) {
	key := fmt.Sprintf("reviews:%d:%d", id, limit)
	var out []domain.ArchivedReview
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	rs, err := s.repo.ListReviews(ctx, id, limit)
	if err != nil {
		return nil, err
	}

	// copy before caching so callers can't mutate the cached value
	cp := make([]domain.ArchivedReview, len(rs))
	copy(cp, rs)

	// size guard: don't cache unreasonably large pages
	if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	}
	return cp, nil
}

// ListComments is the dashboard's comment feed: archived reviews with any
// embedded labeled sub-fields split out of the content.
func (s *QueryService) ListComments(ctx context.Context, id int64, limit int) ([]domain.Comment, error) {
	rs, err := s.ListReviews(ctx, id, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Comment, 0, len(rs))
	for _, rv := range rs {
		parsed := ParseCommentText(rv.Content)
		out = append(out, domain.Comment{
			ID:          rv.ID,
			Author:      rv.Author,
			Rating:      rv.Rating,
			Title:       rv.Title,
			Content:     parsed.Content,
			Description: parsed.Description,
			Date:        rv.Date,
			Version:     rv.Version,
			Country:     rv.Country,
		})
	}
	return out, nil
}
