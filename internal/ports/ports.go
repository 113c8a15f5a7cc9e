package ports

import (
	"context"
	"time"

	"NewsDigest/internal/domain"
)

// NewsCollector gathers the per-category article lists for one run date.
// The returned map always contains a non-empty list for every configured
// category; source failures degrade to placeholder content, never errors.
type NewsCollector interface {
	Collect(ctx context.Context, day time.Time) (map[domain.Category][]domain.Article, error)
}

// DigestRenderer turns the collected article lists into a presentable
// self-contained document.
type DigestRenderer interface {
	Render(articles map[domain.Category][]domain.Article, day time.Time) (string, error)
}

// Dispatcher delivers a rendered document to the configured recipient.
type Dispatcher interface {
	Deliver(ctx context.Context, subject, document string) error
}

// Scheduler controls when digest runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
