//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/reviewpulse/reviewpulse/internal/adapters/itunes"
	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/domain"
	"github.com/reviewpulse/reviewpulse/internal/export"
)

func feedEntry(author, content, date string) map[string]any {
	return map[string]any{
		"author":     map[string]any{"name": map[string]any{"label": author}},
		"im:rating":  map[string]any{"label": "5"},
		"title":      map[string]any{"label": "Great"},
		"content":    map[string]any{"label": content},
		"updated":    map[string]any{"label": date},
		"im:version": map[string]any{"label": "2.1.0"},
	}
}

// Runs the collect-then-export flow against a stubbed store API and
// checks the written file end to end.
func TestExportFlow_SingleCountry(t *testing.T) {
	const appID = "6450840109"

	mux := http.NewServeMux()
	mux.HandleFunc("/lookup", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != appID {
			t.Errorf("lookup id = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"resultCount": 1,
			"results": []any{map[string]any{
				"trackId":           float64(6450840109),
				"trackName":         "Liven: Fun Mental Health",
				"artistName":        "Liven Inc",
				"averageUserRating": 4.6543,
				"userRatingCount":   float64(1234),
				"price":             float64(0),
				"primaryGenreName":  "Health & Fitness",
				"description":       "desc",
				"trackViewUrl":      "https://apps.apple.com/us/app/id6450840109",
				"artworkUrl100":     "https://example.com/icon.png",
			}},
		})
	})
	mux.HandleFunc(fmt.Sprintf("/us/rss/customerreviews/id=%s/json", appID), func(w http.ResponseWriter, r *http.Request) {
		entries := []any{
			map[string]any{"title": map[string]any{"label": "feed metadata"}},
		}
		for i := 0; i < 6; i++ {
			entries = append(entries, feedEntry(
				fmt.Sprintf("user%d", i),
				fmt.Sprintf("review body %d", i),
				fmt.Sprintf("2024-01-0%dT00:00:00-07:00", i+1),
			))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"feed": map[string]any{"entry": entries},
		})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	client := itunes.New(ts.URL, 100)
	collector := app.NewCollector(client)

	res, err := collector.CollectCountry(context.Background(), appID, "us", 5)
	if err != nil {
		t.Fatalf("CollectCountry: %v", err)
	}
	if res.App.Title != "Liven: Fun Mental Health" || res.App.Price != "Free" {
		t.Fatalf("unexpected app: %+v", res.App)
	}
	if len(res.Reviews) != 5 {
		t.Fatalf("reviews len = %d, want 5", len(res.Reviews))
	}

	dir := t.TempDir()
	path, err := export.NewWriter(dir).WriteSingle(res)
	if err != nil {
		t.Fatalf("WriteSingle: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var out domain.CollectResult
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if len(out.Reviews) != 5 {
		t.Fatalf("exported reviews len = %d, want 5", len(out.Reviews))
	}
	if out.ExportInfo.ExportedReviews != 5 {
		t.Fatalf("exportedReviews = %d, want 5", out.ExportInfo.ExportedReviews)
	}
	if out.ExportInfo.TotalReviews != 6 {
		t.Fatalf("totalReviews = %d, want 6", out.ExportInfo.TotalReviews)
	}
	if out.ExportInfo.Country != "us" || out.ExportInfo.AppID != appID {
		t.Fatalf("unexpected export info: %+v", out.ExportInfo)
	}
	if out.ExportInfo.ExportDate == "" {
		t.Fatal("exportDate not stamped")
	}
	if out.Reviews[0].Author != "user0" || out.Reviews[0].Rating != "5" {
		t.Fatalf("unexpected first review: %+v", out.Reviews[0])
	}
}
