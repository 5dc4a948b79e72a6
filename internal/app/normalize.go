package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reviewpulse/reviewpulse/internal/domain"
)

/********** alias registries (single source of truth) **********/

// The RSS feed nests every value under a "label" key and is inconsistent
// about where fields live, so each review field carries an ordered list of
// dot paths tried in sequence. Exhausting the list yields the sentinel.
var entryAliases = map[string][]string{
	"author":  {"author.name.label", "author.label"},
	"rating":  {"im:rating.label", "rating.label"},
	"title":   {"title.label"},
	"content": {"content.label"},
	"date":    {"updated.label"},
	"version": {"im:version.label", "version.label"},
}

const (
	sentinelAuthor  = "Anonymous"
	sentinelTitle   = "No title"
	sentinelContent = "No content"
	sentinelNA      = "N/A"
)

// NormalizeFeed converts one raw review-feed envelope into Reviews.
//
// The feed places a self-referential metadata pseudo-entry first, so index
// 0 of the entry list is always discarded; a single bare entry object is
// therefore normalized to nothing. Shape problems degrade to per-field
// sentinels, and any unexpected failure yields an empty slice rather than
// an error.
func NormalizeFeed(raw map[string]any) (out []domain.Review) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("feed normalization failed")
			out = nil
		}
	}()

	feed, ok := raw["feed"].(map[string]any)
	if !ok {
		return nil
	}

	var entries []any
	switch v := feed["entry"].(type) {
	case []any:
		entries = v
	case map[string]any:
		entries = []any{v}
	default:
		return nil
	}
	if len(entries) <= 1 {
		return nil
	}

	out = make([]domain.Review, 0, len(entries)-1)
	for _, e := range entries[1:] {
		m, _ := e.(map[string]any)
		out = append(out, mapEntry(m))
	}
	return out
}

func mapEntry(e map[string]any) domain.Review {
	return domain.Review{
		Author:  entryField(e, "author", sentinelAuthor),
		Rating:  entryField(e, "rating", sentinelNA),
		Title:   entryField(e, "title", sentinelTitle),
		Content: entryField(e, "content", sentinelContent),
		Date:    entryField(e, "date", time.Now().UTC().Format(time.RFC3339)),
		Version: entryField(e, "version", sentinelNA),
	}
}

func entryField(e map[string]any, key, sentinel string) string {
	for _, p := range entryAliases[key] {
		if s := lookupStr(e, p); s != "" {
			return s
		}
	}
	return sentinel
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstFloat: number from several paths (float64/int/string like "4,5").
func firstFloat(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstInt64: int64 from several paths (float64/int/string).
func firstInt64(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}
