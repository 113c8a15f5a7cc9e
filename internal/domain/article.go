package domain

import (
	"strings"
	"time"
)

// Category identifies one of the fixed digest topics.
type Category string

const (
	CategorySemiconductor Category = "semiconductor"
	CategoryMacroeconomy  Category = "macroeconomy"
)

// Categories lists the digest topics in presentation order.
var Categories = []Category{CategorySemiconductor, CategoryMacroeconomy}

// Title returns the human-readable section heading for a category.
func (c Category) Title() string {
	switch c {
	case CategorySemiconductor:
		return "Semiconductor Industry"
	case CategoryMacroeconomy:
		return "Macroeconomy"
	default:
		return string(c)
	}
}

const (
	// NoLinkURL marks an article without a usable link.
	NoLinkURL = "#"

	// PlaceholderSource names the synthesized record produced when every
	// source for a category fails.
	PlaceholderSource = "News Feed"

	maxTitleLen       = 120
	maxDescriptionLen = 200
)

// Article is an immutable, normalized news item produced for one run.
type Article struct {
	Title       string
	URL         string
	Source      string
	Category    Category
	RetrievedAt time.Time
	Description string
}

// NewArticle normalizes raw candidate fields into an Article. Title and
// description are trimmed and truncated; an empty link becomes NoLinkURL.
func NewArticle(title, url, source string, category Category, retrievedAt time.Time, description string) Article {
	url = strings.TrimSpace(url)
	if url == "" {
		url = NoLinkURL
	}
	return Article{
		Title:       Truncate(strings.TrimSpace(title), maxTitleLen),
		URL:         url,
		Source:      source,
		Category:    category,
		RetrievedAt: retrievedAt,
		Description: Truncate(strings.TrimSpace(description), maxDescriptionLen),
	}
}

// HasLink reports whether the article carries a real URL.
func (a Article) HasLink() bool {
	return a.URL != "" && a.URL != NoLinkURL
}

// Placeholder synthesizes the guaranteed fallback record for a category.
func Placeholder(category Category, retrievedAt time.Time) Article {
	return Article{
		Title:       placeholderTitle(category),
		URL:         NoLinkURL,
		Source:      PlaceholderSource,
		Category:    category,
		RetrievedAt: retrievedAt,
	}
}

func placeholderTitle(category Category) string {
	switch category {
	case CategorySemiconductor:
		return "Semiconductor industry news is being prepared"
	case CategoryMacroeconomy:
		return "Macroeconomy news is being prepared"
	default:
		return "News is being prepared"
	}
}

// Truncate shortens s to at most maxLen runes, appending an ellipsis when
// anything was cut. Multi-byte text is handled rune-wise.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
