package webnews

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsDigest/internal/config"
	"NewsDigest/internal/source"
)

// FeedScanner extracts news candidates from an RSS/Atom feed whose URL
// template embeds the query variant.
type FeedScanner struct {
	cfg       config.SourceConfig
	client    *http.Client
	userAgent string
}

var _ source.Adapter = (*FeedScanner)(nil)

// NewFeedScanner wires an HTTP client and the shared request identity.
func NewFeedScanner(cfg config.SourceConfig, client *http.Client, userAgent string) *FeedScanner {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &FeedScanner{cfg: cfg, client: client, userAgent: userAgent}
}

// Name identifies the source inside the registry and on produced records.
func (f *FeedScanner) Name() string {
	return f.cfg.Name
}

// Fetch retrieves and parses the feed for one query variant.
func (f *FeedScanner) Fetch(ctx context.Context, query string) ([]source.Candidate, error) {
	feedURL := fmt.Sprintf(f.cfg.URL, url.QueryEscape(query))

	parser := gofeed.NewParser()
	parser.UserAgent = f.userAgent
	parser.Client = f.client

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, fmt.Errorf("%w: %s returned %s", source.ErrUnavailable, f.cfg.Name, httpErr.Status)
		}
		return nil, fmt.Errorf("%w: %v", source.ErrParse, err)
	}

	limit := f.cfg.Limit
	if limit <= 0 {
		limit = 5
	}

	candidates := make([]source.Candidate, 0, limit)
	for _, item := range feed.Items {
		if len(candidates) >= limit {
			break
		}

		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		candidates = append(candidates, source.Candidate{
			Title:       title,
			URL:         stripTracking(item.Link),
			Description: strings.TrimSpace(item.Description),
		})
	}

	return candidates, nil
}

// stripTracking drops utm query parameters some feeds append to links.
func stripTracking(link string) string {
	if idx := strings.Index(link, "?utm_"); idx > 0 {
		return link[:idx]
	}
	return link
}
