package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by read paths when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAppNotFound is returned when a store lookup succeeds but carries
	// zero results for the requested app id.
	ErrAppNotFound = errors.New("app not found")
)

// StoreClient fetches catalog metadata and review feeds from the app
// store. Both calls return the decoded JSON envelope untouched; shaping
// happens in the app layer.
type StoreClient interface {
	Lookup(ctx context.Context, appID string) (map[string]any, error)
	ReviewsFeed(ctx context.Context, appID, country string) (map[string]any, error)
}

// ReviewRepository is the review archive.
type ReviewRepository interface {
	// Write paths
	UpsertApp(ctx context.Context, a App) error
	UpsertReviews(ctx context.Context, appID int64, rs []Review) error
	LogMiss(ctx context.Context, appID int64, status int, reason string) error

	// Read paths
	GetApp(ctx context.Context, id int64) (App, error)
	ListReviews(ctx context.Context, appID int64, limit int) ([]ArchivedReview, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
