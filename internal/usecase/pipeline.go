package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"NewsDigest/internal/ports"
)

// ErrDeliveryFailed marks a run whose digest was collected and rendered
// but could not be delivered. Callers should report it without treating
// the collection phase as failed.
var ErrDeliveryFailed = errors.New("digest delivery failed")

// PipelineDeps wires all driven adapters into the digest workflow.
type PipelineDeps struct {
	Collector  ports.NewsCollector
	Renderer   ports.DigestRenderer
	Dispatcher ports.Dispatcher
	Logger     *slog.Logger
}

// Pipeline implements one digest run: collect both categories, render the
// document, and hand it to the dispatcher when one is configured.
type Pipeline struct {
	collector  ports.NewsCollector
	renderer   ports.DigestRenderer
	dispatcher ports.Dispatcher
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		collector:  deps.Collector,
		renderer:   deps.Renderer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ProcessDay executes a full digest run for the given date. A missing
// dispatcher (no mail credentials) skips delivery with a warning; a
// delivery fault is returned wrapped in ErrDeliveryFailed.
func (p *Pipeline) ProcessDay(ctx context.Context, day time.Time) error {
	if p.collector == nil || p.renderer == nil {
		return nil
	}

	articles, err := p.collector.Collect(ctx, day)
	if err != nil {
		return fmt.Errorf("collect news: %w", err)
	}

	for category, records := range articles {
		p.logInfo("category ready", "category", category, "articles", len(records))
	}

	document, err := p.renderer.Render(articles, day)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	p.logInfo("collection phase completed", "date", day.Format("2006-01-02"))

	if p.dispatcher == nil {
		p.logWarn("mail credentials not configured, skipping delivery")
		return nil
	}

	subject := fmt.Sprintf("Daily News Digest - %s", day.Format("2006-01-02"))
	if err := p.dispatcher.Deliver(ctx, subject, document); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}

func (p *Pipeline) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) logWarn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
