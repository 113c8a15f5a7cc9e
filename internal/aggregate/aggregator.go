package aggregate

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/source"
)

// Titles shorter than this are considered noise and rejected.
const minTitleLength = 5

// Plan describes one category's fallback chain: the priority-ordered
// (adapter, query variant) attempts and an optional relevance keyword set.
type Plan struct {
	Category domain.Category
	Keywords []string
	Attempts []source.Attempt
}

// Aggregator produces between 1 and maxResults accepted articles for one
// category, walking the plan's attempts in order until minAcceptable
// records exist or all attempts are exhausted. Source failures are soft:
// they are logged and the next attempt is tried. When everything fails
// the result is a single placeholder record, so the output is never empty.
type Aggregator struct {
	plan          Plan
	minAcceptable int
	maxResults    int
	limiter       *rate.Limiter
	logger        *slog.Logger
}

// NewAggregator wires one category's fallback chain. The limiter paces
// consecutive source invocations and may be shared across categories to
// stay polite toward shared upstream hosts.
func NewAggregator(plan Plan, minAcceptable, maxResults int, limiter *rate.Limiter, logger *slog.Logger) *Aggregator {
	if minAcceptable <= 0 {
		minAcceptable = 3
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	if minAcceptable > maxResults {
		minAcceptable = maxResults
	}
	return &Aggregator{
		plan:          plan,
		minAcceptable: minAcceptable,
		maxResults:    maxResults,
		limiter:       limiter,
		logger:        logger,
	}
}

// Collect runs the fallback chain once for the given run date. The result
// preserves source priority order, then discovery order within a source,
// holds no two records with the same trimmed title, and has length in
// [1, maxResults]. Cancellation is honored between attempts, never
// mid-parse; even a cancelled run yields a valid (placeholder) result.
func (a *Aggregator) Collect(ctx context.Context, day time.Time) []domain.Article {
	accepted := make([]domain.Article, 0, a.maxResults)
	seen := make(map[string]struct{}, a.maxResults)

	for _, attempt := range a.plan.Attempts {
		if len(accepted) >= a.minAcceptable {
			break
		}

		if err := a.wait(ctx); err != nil {
			a.logInfo("collection interrupted", "category", a.plan.Category, "error", err)
			break
		}

		candidates, err := attempt.Adapter.Fetch(ctx, attempt.Query)
		if err != nil {
			a.logWarn("source attempt failed",
				"category", a.plan.Category,
				"source", attempt.Adapter.Name(),
				"query", attempt.Query,
				"error", err)
			continue
		}

		for _, cand := range candidates {
			if len(accepted) >= a.maxResults {
				break
			}

			title := strings.TrimSpace(cand.Title)
			if !a.Accept(title) {
				continue
			}
			if _, dup := seen[title]; dup {
				continue
			}

			seen[title] = struct{}{}
			accepted = append(accepted, domain.NewArticle(
				cand.Title,
				cand.URL,
				attempt.Adapter.Name(),
				a.plan.Category,
				day,
				cand.Description,
			))
		}

		a.logInfo("source attempt done",
			"category", a.plan.Category,
			"source", attempt.Adapter.Name(),
			"query", attempt.Query,
			"accepted", len(accepted))
	}

	if len(accepted) == 0 {
		a.logWarn("all sources exhausted, using placeholder", "category", a.plan.Category)
		accepted = append(accepted, domain.Placeholder(a.plan.Category, day))
	}

	if len(accepted) > a.maxResults {
		accepted = accepted[:a.maxResults]
	}

	return accepted
}

// Accept applies the acceptance filter to a trimmed candidate title: the
// title must reach the minimum length and, when the plan configures
// relevance keywords, contain at least one of them case-insensitively.
// The filter is stateless, so re-applying it to accepted records is a
// no-op.
func (a *Aggregator) Accept(title string) bool {
	if utf8.RuneCountInString(title) < minTitleLength {
		return false
	}

	if len(a.plan.Keywords) == 0 {
		return true
	}

	lower := strings.ToLower(title)
	for _, keyword := range a.plan.Keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func (a *Aggregator) wait(ctx context.Context) error {
	if a.limiter == nil {
		return ctx.Err()
	}
	return a.limiter.Wait(ctx)
}

func (a *Aggregator) logWarn(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}

func (a *Aggregator) logInfo(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
	}
}
