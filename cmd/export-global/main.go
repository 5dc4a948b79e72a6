// Command export-global walks multiple storefronts for one app until the
// review target is met, then writes the deduplicated set to a JSON file.
//
// Usage: export-global <appId> [targetReviews]
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
		fmt.Fprintln(os.Stderr, "usage: export-global <appId> [targetReviews]")
		os.Exit(1)
	}
	appID := os.Args[1]
	target := cfg.ReviewTarget
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			fmt.Fprintln(os.Stderr, "targetReviews must be a positive integer")
			os.Exit(1)
		}
		target = n
	}

	client := itunes.New(cfg.ITunesBase, cfg.ITunesRPS)
	collector := app.NewCollector(client)

	res, err := collector.Collect(context.Background(), appID, cfg.Countries, target)
	if err != nil {
		log.Fatal().Err(err).Str("app", appID).Msg("collect failed")
	}

	path, err := export.NewWriter(cfg.ExportDir).WriteMulti(res)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	log.Info().
		Str("app", res.App.Title).
		Int("target", target).
		Int("found", res.ExportInfo.TotalReviewsFound).
		Int("exported", res.ExportInfo.ExportedReviews).
		Strs("countries", res.ExportInfo.CountriesChecked).
		Str("file", path).
		Msg("export complete")
}
