// Command export fetches one app's reviews from a single storefront and
// writes them to a timestamped JSON file.
//
// Usage: export <appId> [country] [maxReviews]
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/reviewpulse/reviewpulse/internal/adapters/itunes"
	"github.com/reviewpulse/reviewpulse/internal/adapters/observability"
	"github.com/reviewpulse/reviewpulse/internal/app"
	"github.com/reviewpulse/reviewpulse/internal/export"
	"github.com/reviewpulse/reviewpulse/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger("dev")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: export <appId> [country] [maxReviews]")
		os.Exit(1)
	}
	appID := os.Args[1]
	country := "us"
	if len(os.Args) > 2 {
		country = os.Args[2]
	}
	maxReviews := 50
	if len(os.Args) > 3 {
		n, err := strconv.Atoi(os.Args[3])
		if err != nil || n <= 0 {
			fmt.Fprintln(os.Stderr, "maxReviews must be a positive integer")
			os.Exit(1)
		}
		maxReviews = n
	}

	client := itunes.New(cfg.ITunesBase, cfg.ITunesRPS)
	collector := app.NewCollector(client)

	res, err := collector.CollectCountry(context.Background(), appID, country, maxReviews)
	if err != nil {
		log.Fatal().Err(err).Str("app", appID).Msg("collect failed")
	}

	path, err := export.NewWriter(cfg.ExportDir).WriteSingle(res)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	log.Info().
		Str("app", res.App.Title).
		Str("country", country).
		Int("found", res.ExportInfo.TotalReviews).
		Int("exported", res.ExportInfo.ExportedReviews).
		Str("file", path).
		Msg("export complete")
}
