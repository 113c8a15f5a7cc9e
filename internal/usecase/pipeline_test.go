package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsDigest/internal/domain"
)

var day = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

type fakeCollector struct {
	articles map[domain.Category][]domain.Article
	err      error
}

func (f *fakeCollector) Collect(context.Context, time.Time) (map[domain.Category][]domain.Article, error) {
	return f.articles, f.err
}

type fakeRenderer struct {
	document string
	err      error
}

func (f *fakeRenderer) Render(map[domain.Category][]domain.Article, time.Time) (string, error) {
	return f.document, f.err
}

type fakeDispatcher struct {
	subject  string
	document string
	calls    int
	err      error
}

func (f *fakeDispatcher) Deliver(_ context.Context, subject, document string) error {
	f.calls++
	f.subject = subject
	f.document = document
	return f.err
}

func collected() map[domain.Category][]domain.Article {
	return map[domain.Category][]domain.Article{
		domain.CategorySemiconductor: {domain.Placeholder(domain.CategorySemiconductor, day)},
		domain.CategoryMacroeconomy:  {domain.Placeholder(domain.CategoryMacroeconomy, day)},
	}
}

func TestProcessDayDeliversRenderedDigest(t *testing.T) {
	t.Parallel()

	dispatcher := &fakeDispatcher{}
	pipeline := NewPipeline(PipelineDeps{
		Collector:  &fakeCollector{articles: collected()},
		Renderer:   &fakeRenderer{document: "<html>digest</html>"},
		Dispatcher: dispatcher,
	})

	err := pipeline.ProcessDay(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, 1, dispatcher.calls)
	assert.Equal(t, "Daily News Digest - 2026-08-31", dispatcher.subject)
	assert.Equal(t, "<html>digest</html>", dispatcher.document)
}

func TestProcessDaySkipsDeliveryWithoutDispatcher(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(PipelineDeps{
		Collector: &fakeCollector{articles: collected()},
		Renderer:  &fakeRenderer{document: "<html></html>"},
	})

	err := pipeline.ProcessDay(context.Background(), day)
	assert.NoError(t, err, "missing credentials must not fail the run")
}

func TestProcessDayWrapsDeliveryFailure(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(PipelineDeps{
		Collector:  &fakeCollector{articles: collected()},
		Renderer:   &fakeRenderer{document: "<html></html>"},
		Dispatcher: &fakeDispatcher{err: errors.New("smtp auth rejected")},
	})

	err := pipeline.ProcessDay(context.Background(), day)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestProcessDayPropagatesCollectorFailure(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(PipelineDeps{
		Collector: &fakeCollector{err: context.Canceled},
		Renderer:  &fakeRenderer{},
	})

	err := pipeline.ProcessDay(context.Background(), day)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDeliveryFailed)
}

func TestProcessDayPropagatesRenderFailure(t *testing.T) {
	t.Parallel()

	dispatcher := &fakeDispatcher{}
	pipeline := NewPipeline(PipelineDeps{
		Collector:  &fakeCollector{articles: collected()},
		Renderer:   &fakeRenderer{err: errors.New("broken template")},
		Dispatcher: dispatcher,
	})

	err := pipeline.ProcessDay(context.Background(), day)
	require.Error(t, err)
	assert.Zero(t, dispatcher.calls, "nothing must be delivered when rendering fails")
}
