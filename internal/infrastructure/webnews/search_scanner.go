package webnews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NewsDigest/internal/config"
	"NewsDigest/internal/source"
)

// SearchScanner extracts news candidates from an HTML search results page.
// The node selectors come from configuration; the scanner itself knows
// nothing about any particular site's markup.
type SearchScanner struct {
	cfg       config.SourceConfig
	client    *http.Client
	userAgent string
}

var _ source.Adapter = (*SearchScanner)(nil)

// NewSearchScanner wires an HTTP client and the shared request identity.
func NewSearchScanner(cfg config.SourceConfig, client *http.Client, userAgent string) *SearchScanner {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SearchScanner{cfg: cfg, client: client, userAgent: userAgent}
}

// Name identifies the source inside the registry and on produced records.
func (s *SearchScanner) Name() string {
	return s.cfg.Name
}

// Fetch performs one GET for the query variant and extracts candidates
// via the configured selectors. All failures map to the soft-failure
// taxonomy; the caller decides whether to move on.
func (s *SearchScanner) Fetch(ctx context.Context, query string) ([]source.Candidate, error) {
	pageURL := fmt.Sprintf(s.cfg.URL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", source.ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", source.ErrUnavailable, s.cfg.Name, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", source.ErrParse, err)
	}

	return s.extractCandidates(doc), nil
}

func (s *SearchScanner) extractCandidates(doc *goquery.Document) []source.Candidate {
	limit := s.cfg.Limit
	if limit <= 0 {
		limit = 5
	}

	var candidates []source.Candidate
	doc.Find(s.cfg.ItemSelector).EachWithBreak(func(i int, item *goquery.Selection) bool {
		if len(candidates) >= limit {
			return false
		}

		title := itemTitle(item, s.cfg.TitleSelector)
		if title == "" {
			return true
		}

		href, _ := item.Attr("href")
		candidates = append(candidates, source.Candidate{
			Title: title,
			URL:   s.absoluteURL(strings.TrimSpace(href)),
		})
		return true
	})

	return candidates
}

func itemTitle(item *goquery.Selection, selector string) string {
	if selector == "" {
		return strings.TrimSpace(item.Text())
	}
	return strings.TrimSpace(item.Find(selector).First().Text())
}

// absoluteURL resolves site-relative links against the configured base.
func (s *SearchScanner) absoluteURL(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	if s.cfg.BaseURL == "" {
		return href
	}
	return strings.TrimSuffix(s.cfg.BaseURL, "/") + "/" + strings.TrimPrefix(href, "/")
}
