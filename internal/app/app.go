package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NewsDigest/internal/aggregate"
	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/infrastructure/mail"
	"NewsDigest/internal/infrastructure/scheduler"
	"NewsDigest/internal/infrastructure/webnews"
	"NewsDigest/internal/logging"
	"NewsDigest/internal/ports"
	"NewsDigest/internal/render"
	"NewsDigest/internal/source"
	"NewsDigest/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := &http.Client{Timeout: cfg.HTTP.Timeout()}

	registry, err := webnews.BuildRegistry(cfg.Sources, client, cfg.HTTP.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("build sources: %w", err)
	}

	plans, err := buildPlans(cfg.Topics, registry)
	if err != nil {
		return nil, fmt.Errorf("build topics: %w", err)
	}

	collector := aggregate.NewTopicCollector(plans, aggregate.Options{
		MinAcceptable: cfg.Aggregation.MinAcceptable,
		MaxResults:    cfg.Aggregation.MaxResults,
		Pacing:        cfg.Aggregation.Pacing(),
		Logger:        baseLogger.With("component", "collector"),
	})

	var dispatcher ports.Dispatcher
	if cfg.Mail.Configured() {
		dispatcher = mail.NewMailer(cfg.Mail, baseLogger.With("component", "mailer"))
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Collector:  collector,
		Renderer:   render.NewHTMLRenderer(),
		Dispatcher: dispatcher,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, logger: baseLogger}, nil
}

// Run performs a single digest run, or serves the cron schedule when one
// is configured.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	spec := a.cfg.Scheduler.CronExpression
	if spec == "" {
		now := time.Now().In(a.cfg.Scheduler.Location())
		return a.pipeline.ProcessDay(ctx, now)
	}

	driver := scheduler.NewCronScheduler(spec, a.cfg.Scheduler.Location())
	runner := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"))

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "cron", spec, "timezone", a.cfg.Scheduler.Timezone)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-ctx.Done():
	case <-stop:
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return runner.Stop(stopCtx)
}

func buildPlans(topics []config.TopicConfig, registry *source.Registry) ([]aggregate.Plan, error) {
	plans := make([]aggregate.Plan, 0, len(topics))

	for _, topic := range topics {
		category, err := parseCategory(topic.Category)
		if err != nil {
			return nil, err
		}

		attempts := make([]source.Attempt, 0, len(topic.Attempts))
		for _, attempt := range topic.Attempts {
			adapter, err := registry.Resolve(attempt.Source)
			if err != nil {
				return nil, fmt.Errorf("topic %s: %w", topic.Category, err)
			}
			attempts = append(attempts, source.Attempt{Adapter: adapter, Query: attempt.Query})
		}

		plans = append(plans, aggregate.Plan{
			Category: category,
			Keywords: topic.Keywords,
			Attempts: attempts,
		})
	}

	return plans, nil
}

func parseCategory(name string) (domain.Category, error) {
	for _, category := range domain.Categories {
		if string(category) == name {
			return category, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}
