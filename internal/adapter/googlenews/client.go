// Package googlenews reads flood-related headlines from the Google News RSS
// search feed.
package googlenews

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/flood-risk-service/internal/adapter/upstream"
	"github.com/couchcryptid/flood-risk-service/internal/domain"
	"github.com/couchcryptid/flood-risk-service/internal/observability"
	"github.com/mmcdole/gofeed/rss"
)

// DefaultBaseURL is the Google News RSS search endpoint.
const DefaultBaseURL = "https://news.google.com/rss/search"

const querySuffix = " flood OR rain OR waterlogging"

// Edition selects the language and region of the feed.
type Edition struct {
	Language string // hl
	Region   string // gl
	Edition  string // ceid
}

// DefaultEdition is the English-language Indian edition.
var DefaultEdition = Edition{Language: "en-IN", Region: "IN", Edition: "IN:en"}

// Client implements domain.NewsProvider.
type Client struct {
	baseURL    string
	edition    Edition
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Google News client. Empty baseURL or edition fields
// fall back to the defaults.
func NewClient(baseURL string, edition Edition, httpClient *http.Client, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if edition.Language == "" {
		edition.Language = DefaultEdition.Language
	}
	if edition.Region == "" {
		edition.Region = DefaultEdition.Region
	}
	if edition.Edition == "" {
		edition.Edition = DefaultEdition.Edition
	}
	return &Client{
		baseURL:    baseURL,
		edition:    edition,
		httpClient: httpClient,
		metrics:    metrics,
		logger:     logger,
	}
}

// Headlines returns every item of the search feed for the city. An item
// whose publish date is missing or unparseable fails the whole call.
func (c *Client) Headlines(ctx context.Context, city string) ([]domain.NewsItem, error) {
	start := time.Now()
	body, err := upstream.Get(ctx, c.httpClient, domain.SourceNews, c.searchURL(city))
	if err == nil {
		var items []domain.NewsItem
		items, err = parseFeed(body)
		if err == nil {
			c.metrics.ObserveUpstream(domain.SourceNews, time.Since(start).Seconds(), nil)
			c.logger.Debug("news feed fetched", "city", city, "items", len(items))
			return items, nil
		}
	}
	c.metrics.ObserveUpstream(domain.SourceNews, time.Since(start).Seconds(), err)
	return nil, err
}

func (c *Client) searchURL(city string) string {
	params := url.Values{
		"q":    {city + querySuffix},
		"hl":   {c.edition.Language},
		"gl":   {c.edition.Region},
		"ceid": {c.edition.Edition},
	}
	return c.baseURL + "?" + params.Encode()
}

func parseFeed(body []byte) ([]domain.NewsItem, error) {
	fp := rss.Parser{}
	feed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &domain.UpstreamError{Source: domain.SourceNews, Err: fmt.Errorf("parse feed: %w", err)}
	}

	items := make([]domain.NewsItem, 0, len(feed.Items))
	for i, it := range feed.Items {
		if it.PubDateParsed == nil {
			return nil, &domain.UpstreamError{
				Source: domain.SourceNews,
				Err:    fmt.Errorf("item %d: invalid publish date %q", i, it.PubDate),
			}
		}
		items = append(items, domain.NewsItem{
			Title:     it.Title,
			Published: it.PubDate,
			PubTime:   *it.PubDateParsed,
		})
	}
	return items, nil
}
