package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/domain"
)

type recordingRepo struct {
	mu        sync.Mutex
	apps      []domain.App
	reviews   map[int64][]domain.Review
	misses    []int64
	upsertErr error
}

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{reviews: map[int64][]domain.Review{}}
}

func (r *recordingRepo) UpsertApp(ctx context.Context, a domain.App) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.apps = append(r.apps, a)
	return nil
}

func (r *recordingRepo) UpsertReviews(ctx context.Context, appID int64, rs []domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[appID] = append(r.reviews[appID], rs...)
	return nil
}

func (r *recordingRepo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses = append(r.misses, id)
	return nil
}

func (r *recordingRepo) GetApp(ctx context.Context, id int64) (domain.App, error) {
	return domain.App{}, domain.ErrNotFound
}

func (r *recordingRepo) ListReviews(ctx context.Context, appID int64, limit int) ([]domain.ArchivedReview, error) {
	return nil, nil
}

type recordingCache struct {
	mu      sync.Mutex
	deleted []string
}

func (c *recordingCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	return false, nil
}
func (c *recordingCache) Set(ctx context.Context, key string, v any, ttlSec int) error { return nil }
func (c *recordingCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, key)
	return nil
}

func TestIngestApp_ArchivesAndInvalidates(t *testing.T) {
	store := &fakeStore{
		lookupFn: func(string) (map[string]any, error) { return lookupEnvelope(0), nil },
		feedFn: func(_, country string) (map[string]any, error) {
			return rawFeed(
				entry("Ana", "love it", "2024-01-01"),
				entry("Bob", "fine", "2024-01-02"),
			), nil
		},
	}
	repo := newRecordingRepo()
	cache := &recordingCache{}
	ing := app.NewIngestionService(app.NewCollector(store), repo, cache)

	if err := ing.IngestApp(context.Background(), "6450840109", []string{"us"}, 10); err != nil {
		t.Fatalf("IngestApp: %v", err)
	}

	if len(repo.apps) != 1 || repo.apps[0].ID != 6450840109 {
		t.Fatalf("apps = %+v", repo.apps)
	}
	if got := len(repo.reviews[6450840109]); got != 2 {
		t.Fatalf("archived reviews = %d, want 2", got)
	}
	if len(repo.misses) != 0 {
		t.Fatalf("unexpected misses: %v", repo.misses)
	}

	wantDel := map[string]bool{"app:6450840109": true, "reviews:6450840109:50": true}
	for _, k := range cache.deleted {
		delete(wantDel, k)
	}
	if len(wantDel) != 0 {
		t.Fatalf("missing invalidations: %v (deleted %v)", wantDel, cache.deleted)
	}
}

func TestIngestApp_AllStorefrontsMiss_LogsMiss(t *testing.T) {
	store := &fakeStore{
		lookupFn: func(string) (map[string]any, error) { return nil, errors.New("boom") },
		feedFn:   func(_, country string) (map[string]any, error) { return nil, errors.New("boom") },
	}
	repo := newRecordingRepo()
	ing := app.NewIngestionService(app.NewCollector(store), repo, &recordingCache{})

	if err := ing.IngestApp(context.Background(), "999", []string{"us", "gb"}, 10); err != nil {
		t.Fatalf("IngestApp: %v", err)
	}
	if len(repo.apps) != 0 {
		t.Fatalf("unexpected upserts: %+v", repo.apps)
	}
	if len(repo.misses) != 1 || repo.misses[0] != 999 {
		t.Fatalf("misses = %v, want [999]", repo.misses)
	}
}
