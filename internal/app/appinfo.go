package app

import (
	"strconv"

	"github.com/reviewpulse/reviewpulse/internal/domain"
)

// appFromLookup unwraps a lookup envelope. Zero results is the store's way
// of saying the id does not exist.
func appFromLookup(env map[string]any) (domain.App, error) {
	results, _ := env["results"].([]any)
	if len(results) == 0 {
		return domain.App{}, domain.ErrAppNotFound
	}
	first, _ := results[0].(map[string]any)
	return mapAppInfo(first), nil
}

func mapAppInfo(p map[string]any) domain.App {
	a := domain.App{
		Title:       lookupStr(p, "trackName"),
		Developer:   lookupStr(p, "artistName"),
		Rating:      sentinelNA,
		Price:       priceDisplay(p),
		Category:    lookupStr(p, "primaryGenreName"),
		Description: lookupStr(p, "description"),
		AppURL:      lookupStr(p, "trackViewUrl"),
		IconURL:     lookupStr(p, "artworkUrl100"),
	}
	if v := firstInt64(p, "trackId", "id"); v != nil {
		a.ID = *v
	}
	if f := firstFloat(p, "averageUserRating"); f != nil {
		a.Rating = strconv.FormatFloat(*f, 'f', -1, 64)
	}
	if v := firstInt64(p, "userRatingCount"); v != nil {
		a.RatingCount = int(*v)
	}
	return a
}

// priceDisplay renders the raw numeric price: exactly 0 is "Free", anything
// else is "$"-prefixed with no currency localization.
func priceDisplay(p map[string]any) string {
	f := firstFloat(p, "price")
	if f == nil {
		if s := lookupStr(p, "formattedPrice"); s != "" {
			return s
		}
		return sentinelNA
	}
	if *f == 0 {
		return "Free"
	}
	return "$" + strconv.FormatFloat(*f, 'f', -1, 64)
}
