// Package bref fetches and parses Basketball Reference pages: box scores,
// team rosters, and player season averages.
//
// The site hides some tables ("advanced" box scores, parts of player pages)
// inside HTML comments; fetched markup is textually unmasked before parsing.
// Requests are throttled with a token bucket sized to the site's informal
// ~20 requests/minute limit.
package bref

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// Client is the rate-limited HTTP client for all Basketball Reference pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a client with token-bucket rate limiting.
func NewClient(baseURL, userAgent string, requestsPerMinute float64, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerMinute/60.0), 1),
		logger:     logger,
	}
}

// hiddenTablePattern matches the comment blocks Basketball Reference wraps
// around tables it lazy-loads client-side.
var hiddenTablePattern = regexp.MustCompile(`(?s)<!--\s*(<div[^>]*>.*?</div>)\s*-->`)

// unmaskComments rewrites commented-out table wrappers back into live
// markup. This is a text pre-pass applied before DOM parsing.
func unmaskComments(html string) string {
	return hiddenTablePattern.ReplaceAllString(html, "$1")
}

// get performs one rate-limited GET and returns the parsed document with
// hidden tables unmasked. A non-200 status is an error.
func (c *Client) get(ctx context.Context, path string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s returned %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(unmaskComments(string(body))))
	if err != nil {
		return nil, fmt.Errorf("parse HTML %s: %w", path, err)
	}
	return doc, nil
}

// BoxScorePage fetches the box score page for the game hosted by homeAbbrev
// (our abbreviation, translated here) on the given date.
func (c *Client) BoxScorePage(ctx context.Context, homeAbbrev string, gameDate time.Time) (*goquery.Document, error) {
	path := fmt.Sprintf("/boxscores/%s0%s.html", gameDate.Format("20060102"), ToBref(homeAbbrev))
	return c.get(ctx, path)
}

// RosterPage fetches the team page for the season starting in the given
// year. Basketball Reference keys team pages by the season's ending year.
func (c *Client) RosterPage(ctx context.Context, brefAbbrev string, season int) (*goquery.Document, error) {
	path := fmt.Sprintf("/teams/%s/%d.html", brefAbbrev, season+1)
	return c.get(ctx, path)
}

// PlayerPage fetches a player's main page by slug.
func (c *Client) PlayerPage(ctx context.Context, slug string) (*goquery.Document, error) {
	path := fmt.Sprintf("/players/%s/%s.html", slug[:1], slug)
	return c.get(ctx, path)
}
