package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/domain"
)

type stubRepo struct {
	apps    map[int64]domain.App
	reviews map[int64][]domain.ArchivedReview
}

func (s *stubRepo) UpsertApp(ctx context.Context, a domain.App) error { return nil }
func (s *stubRepo) UpsertReviews(ctx context.Context, appID int64, rs []domain.Review) error {
	return nil
}
func (s *stubRepo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	return nil
}
func (s *stubRepo) GetApp(ctx context.Context, id int64) (domain.App, error) {
	a, ok := s.apps[id]
	if !ok {
		return domain.App{}, domain.ErrNotFound
	}
	return a, nil
}
func (s *stubRepo) ListReviews(ctx context.Context, appID int64, limit int) ([]domain.ArchivedReview, error) {
	rs := s.reviews[appID]
	if len(rs) > limit {
		rs = rs[:limit]
	}
	return rs, nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (noopCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (noopCache) Del(ctx context.Context, key string) error { return nil }

func newTestServer() *httptest.Server {
	repo := &stubRepo{
		apps: map[int64]domain.App{
			6450840109: {ID: 6450840109, Title: "Liven", Price: "Free", Rating: "4.6543"},
		},
		reviews: map[int64][]domain.ArchivedReview{
			6450840109: {
				{ID: 2, AppID: 6450840109, SourceID: "b", Author: "Bob", Content: "fine app\n\nОпис: дрібний баг", Date: "2024-01-02"},
				{ID: 1, AppID: 6450840109, SourceID: "a", Author: "Ana", Content: "love it", Date: "2024-01-01"},
			},
		},
	}
	q := app.NewQueryService(repo, noopCache{}, time.Minute)
	srv := New()
	srv.MountHandlers(&Handlers{Q: q})
	return httptest.NewServer(srv.Mux())
}

func TestGetApp_OKAndETag(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/apps/6450840109")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	var a domain.App
	if err := json.NewDecoder(res.Body).Decode(&a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Title != "Liven" || a.Price != "Free" {
		t.Fatalf("unexpected app: %+v", a)
	}

	// Conditional request short-circuits.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/apps/6450840109", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("conditional status %d, want 304", res2.StatusCode)
	}
}

func TestGetApp_NotFoundProblem(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/apps/42")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content-type %q", ct)
	}
	var p struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Status != 404 {
		t.Fatalf("problem status %d", p.Status)
	}
}

func TestListReviews_LimitValidation(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	for _, bad := range []string{"0", "-1", "201", "abc"} {
		res, err := http.Get(ts.URL + "/v1/apps/6450840109/reviews?limit=" + bad)
		if err != nil {
			t.Fatalf("GET limit=%s: %v", bad, err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("limit=%s status %d, want 400", bad, res.StatusCode)
		}
	}

	res, err := http.Get(ts.URL + "/v1/apps/6450840109/reviews?limit=1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	var rs []domain.ArchivedReview
	if err := json.NewDecoder(res.Body).Decode(&rs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rs) != 1 || rs[0].Author != "Bob" {
		t.Fatalf("unexpected reviews: %+v", rs)
	}
}

func TestListComments_ExtractsDescription(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/apps/6450840109/comments")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var cs []domain.Comment
	if err := json.NewDecoder(res.Body).Decode(&cs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cs) != 2 {
		t.Fatalf("len = %d, want 2", len(cs))
	}
	// Bob's labeled comment has the description split out.
	if cs[0].Description == nil || *cs[0].Description != "дрібний баг" {
		t.Fatalf("description not extracted: %+v", cs[0])
	}
	if cs[0].Content != "fine app" {
		t.Fatalf("content = %q", cs[0].Content)
	}
	if cs[1].Description != nil {
		t.Fatalf("unlabeled comment got description: %+v", cs[1])
	}
}
