// Package bbref looks up career batting statistics for a player by
// scraping Baseball-Reference search results and the player page. A player
// that cannot be found is an absence, not an error.
package bbref

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://www.baseball-reference.com"
	defaultUserAgent = "Mozilla/5.0"
)

// CareerStats holds the career totals scraped from a player page. Values
// are the literal cell strings from the stats table footer.
type CareerStats struct {
	BattingAvg string
	HomeRuns   string
	RBI        string
	PlayerURL  string
}

// Client looks up player career stats.
type Client interface {
	CareerStats(ctx context.Context, playerName string) (*CareerStats, error)
}

// StatusError reports a non-200 response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bbref: unexpected status %d", e.Code)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	switch e.Code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) { c.userAgent = ua }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithRateLimit sets the requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type httpClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a Baseball-Reference client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(0.5), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// CareerStats searches for the player, follows the first result, and reads
// career totals from the stats table footer. Returns (nil, nil) when the
// search has no usable result.
func (c *httpClient) CareerStats(ctx context.Context, playerName string) (*CareerStats, error) {
	searchURL := fmt.Sprintf("%s/search/search.fcgi?search=%s", c.baseURL, url.QueryEscape(playerName))
	searchDoc, err := c.fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	href, ok := searchDoc.Find("div.search-item a").First().Attr("href")
	if !ok || href == "" {
		return nil, nil
	}

	playerURL := href
	if !strings.HasPrefix(playerURL, "http") {
		playerURL = c.baseURL + href
	}

	playerDoc, err := c.fetch(ctx, playerURL)
	if err != nil {
		return nil, err
	}

	stats := &CareerStats{PlayerURL: playerURL}
	foot := playerDoc.Find("tfoot").First()
	stats.BattingAvg = strings.TrimSpace(foot.Find(`td[data-stat="batting_avg"]`).First().Text())
	stats.HomeRuns = strings.TrimSpace(foot.Find(`td[data-stat="HR"]`).First().Text())
	stats.RBI = strings.TrimSpace(foot.Find(`td[data-stat="RBI"]`).First().Text())
	return stats, nil
}

func (c *httpClient) fetch(ctx context.Context, u string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "bbref: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "bbref: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "bbref: get %s", u)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "bbref: parse %s", u)
	}
	return doc, nil
}
