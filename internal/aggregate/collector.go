package aggregate

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

// TopicCollector runs one Aggregator per configured category, one at a
// time, sharing a single pacing limiter so consecutive requests stay
// spaced regardless of which category issues them.
type TopicCollector struct {
	aggregators []*Aggregator
	logger      *slog.Logger
}

var _ ports.NewsCollector = (*TopicCollector)(nil)

// Options tunes the collection policy for every category.
type Options struct {
	MinAcceptable int
	MaxResults    int
	Pacing        time.Duration
	Logger        *slog.Logger
}

// NewTopicCollector builds an aggregator per plan with a shared limiter.
func NewTopicCollector(plans []Plan, opts Options) *TopicCollector {
	pacing := opts.Pacing
	if pacing <= 0 {
		pacing = time.Second
	}
	limiter := rate.NewLimiter(rate.Every(pacing), 1)

	aggregators := make([]*Aggregator, 0, len(plans))
	for _, plan := range plans {
		aggregators = append(aggregators, NewAggregator(
			plan,
			opts.MinAcceptable,
			opts.MaxResults,
			limiter,
			opts.Logger,
		))
	}

	return &TopicCollector{aggregators: aggregators, logger: opts.Logger}
}

// Collect gathers every category's article list for the given run date.
// Categories run sequentially in configured order. The only error is a
// cancelled context; source failures never surface here.
func (c *TopicCollector) Collect(ctx context.Context, day time.Time) (map[domain.Category][]domain.Article, error) {
	results := make(map[domain.Category][]domain.Article, len(c.aggregators))

	for _, aggregator := range c.aggregators {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		articles := aggregator.Collect(ctx, day)
		results[aggregator.plan.Category] = articles

		if c.logger != nil {
			c.logger.Info("category collected",
				"category", aggregator.plan.Category,
				"articles", len(articles))
		}
	}

	return results, nil
}
