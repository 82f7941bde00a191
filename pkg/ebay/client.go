// Package ebay looks up recent sold prices for a card by scraping eBay's
// completed-listings search. Absence of sales data is a normal outcome,
// reported as a nil result rather than an error.
package ebay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://www.ebay.com"
	defaultUserAgent = "Mozilla/5.0"

	// maxListings bounds how many search results feed the price stats.
	maxListings = 10
)

var priceExpr = regexp.MustCompile(`\$?([\d,]+\.?\d*)`)

// Query identifies the card to price.
type Query struct {
	PlayerName   string
	Year         string
	Manufacturer string
}

// Prices summarizes the sold listings found for a query.
type Prices struct {
	Avg      float64
	Min      float64
	Max      float64
	NumSales int
}

// Client searches eBay sold listings.
type Client interface {
	SoldListings(ctx context.Context, q Query) (*Prices, error)
}

// StatusError reports a non-200 response from eBay.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ebay: unexpected status %d", e.Code)
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

// WithBaseURL overrides the default eBay base URL.
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

// WithRateLimit sets the requests-per-second limit for search calls.
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

// NewClient creates an eBay sold-listings client.
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

// SoldListings fetches the completed-sales search for the card and derives
// avg/min/max over the top listings. Returns (nil, nil) when no prices are
// found on the page.
func (c *httpClient) SoldListings(ctx context.Context, q Query) (*Prices, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "ebay: rate limit wait")
	}

	query := strings.TrimSpace(fmt.Sprintf("%s %s %s baseball card", q.Year, q.Manufacturer, q.PlayerName))
	searchURL := fmt.Sprintf("%s/sch/i.html?_nkw=%s&LH_Complete=1&LH_Sold=1",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "ebay: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "ebay: search request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "ebay: parse response")
	}

	prices := parsePrices(doc)
	if len(prices) == 0 {
		return nil, nil
	}

	result := &Prices{NumSales: len(prices), Min: prices[0], Max: prices[0]}
	sum := 0.0
	for _, p := range prices {
		sum += p
		if p < result.Min {
			result.Min = p
		}
		if p > result.Max {
			result.Max = p
		}
	}
	result.Avg = sum / float64(len(prices))
	return result, nil
}

// parsePrices pulls numeric sold prices from the top search results.
func parsePrices(doc *goquery.Document) []float64 {
	var prices []float64
	doc.Find("div.s-item__info").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxListings {
			return false
		}
		text := strings.TrimSpace(sel.Find("span.s-item__price").Text())
		if text == "" {
			return true
		}
		m := priceExpr.FindStringSubmatch(text)
		if m == nil {
			return true
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			return true
		}
		prices = append(prices, v)
		return true
	})
	return prices
}
