// Command export-multi collects reviews for the popular-apps list from
// one storefront and writes a combined JSON file.
//
// Usage: export-multi [country] [maxReviewsPerApp]
package main

import (
	"context"
	"errors"
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

// parseArgs reads [country] [maxReviewsPerApp]; both are optional.
func parseArgs(args []string) (country string, maxPerApp int, err error) {
	country, maxPerApp = "us", 50
	if len(args) > 0 {
		country = args[0]
	}
	if len(args) > 1 {
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil || n <= 0 {
			return "", 0, errors.New("maxReviewsPerApp must be a positive integer")
		}
		maxPerApp = n
	}
	return country, maxPerApp, nil
}

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger("dev")

	country, maxPerApp, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "usage: export-multi [country] [maxReviewsPerApp]")
		os.Exit(1)
	}

	client := itunes.New(cfg.ITunesBase, cfg.ITunesRPS)
	batch := app.NewBatchCollector(app.NewCollector(client), cfg.Workers)

	res, err := batch.CollectApps(context.Background(), shared.PopularAppIDs, country, maxPerApp)
	if err != nil {
		log.Fatal().Err(err).Msg("batch collect failed")
	}

	path, err := export.NewWriter(cfg.ExportDir).WriteBatch(res)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	log.Info().
		Int("apps", res.Summary.TotalApps).
		Int("successful", res.Summary.SuccessfulApps).
		Int("reviews", res.Summary.TotalReviews).
		Str("country", country).
		Str("file", path).
		Msg("export complete")
}
