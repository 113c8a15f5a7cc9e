package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartRejectsInvalidExpression(t *testing.T) {
	t.Parallel()

	sched := NewCronScheduler("not a cron spec", time.UTC)
	err := sched.Start(context.Background(), func(time.Time) {})
	require.Error(t, err)
}

func TestStartAndStop(t *testing.T) {
	t.Parallel()

	sched := NewCronScheduler("0 7 * * *", time.UTC)
	require.NoError(t, sched.Start(context.Background(), func(time.Time) {}))

	// Second Start is a no-op while running.
	require.NoError(t, sched.Start(context.Background(), func(time.Time) {}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, sched.Stop(ctx))

	// Stop after Stop is a no-op.
	assert.NoError(t, sched.Stop(context.Background()))
}

func TestStopWithoutStart(t *testing.T) {
	t.Parallel()

	sched := NewCronScheduler("0 7 * * *", time.UTC)
	assert.NoError(t, sched.Stop(context.Background()))
}
