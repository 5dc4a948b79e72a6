// internal/adapters/itunes/client.go
package itunes

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/reviewpulse/reviewpulse/internal/adapters/observability"
)

// Client talks to the public iTunes catalog and customer-review feeds.
// No API key is involved; the endpoints are unauthenticated.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) *Client {
	return NewWithHTTPClient(base, rps, &http.Client{Timeout: 20 * time.Second})
}

// NewWithHTTPClient lets tests inject a mock transport.
func NewWithHTTPClient(base string, rps int, hc *http.Client) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   hc,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Lookup resolves catalog metadata by app id. The decoded envelope is
// returned as-is: {"resultCount": n, "results": [...]}.
func (c *Client) Lookup(ctx context.Context, appID string) (map[string]any, error) {
	u := fmt.Sprintf("%s/lookup?id=%s", c.base, url.QueryEscape(appID))
	var out map[string]any
	return out, c.get(ctx, "lookup", u, &out)
}

// ReviewsFeed fetches the RSS customer-review feed for one storefront.
// The decoded envelope is {"feed": {"entry": [...] | {...}}}.
func (c *Client) ReviewsFeed(ctx context.Context, appID, country string) (map[string]any, error) {
	u := fmt.Sprintf("%s/%s/rss/customerreviews/id=%s/json",
		c.base, url.PathEscape(strings.ToLower(country)), url.PathEscape(appID))
	var out map[string]any
	return out, c.get(ctx, "feed", u, &out)
}

// StatusError is a non-success HTTP response that survived retries.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string { return fmt.Sprintf("itunes: status %d", e.Status) }

// get performs a GET with client-side rate limiting, retries, and JSON
// decode into out. Retries on 429 and transient 5xx, honoring Retry-After
// when provided.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "reviewpulse/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("itunes", endpoint, 0, time.Since(start))
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("itunes", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = &StatusError{Status: resp.StatusCode}
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return &StatusError{Status: resp.StatusCode}
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter from crypto/rand so concurrent fetchers stay spread out.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
