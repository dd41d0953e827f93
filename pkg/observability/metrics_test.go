package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/testutils"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsLifecycle(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	clock := testutils.NewMockClock()
	counter, err := reel.New("m", domain.Options{Value: 0},
		reel.WithClock(clock),
		reel.WithLifecycleHooks(metrics.Hooks()),
	)
	require.NoError(t, err)

	require.NoError(t, counter.SetValue(ctx, 1))
	require.NoError(t, counter.SetValue(ctx, 2)) // supersedes
	require.NoError(t, counter.StartAnimation(ctx, nil))
	counter.StopAnimation(ctx)
	require.NoError(t, counter.SetValue(ctx, 3))
	clock.Advance(time.Second)
	counter.Tick(ctx)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Started.WithLabelValues("simultaneous", "value")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Started.WithLabelValues("simultaneous", "manual")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Cancelled.WithLabelValues("simultaneous")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Ended.WithLabelValues("simultaneous", "stopped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Ended.WithLabelValues("simultaneous", "completed")))
	assert.Equal(t, 4, testutil.CollectAndCount(metrics.Duration))
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	second, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	assert.Same(t, first.Started, second.Started)
}

func TestChainHooks(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnAnimationStart: func(context.Context, *domain.AnimationEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{
		OnAnimationStart: func(context.Context, *domain.AnimationEvent) { calls = append(calls, "b") },
		OnAnimationEnd:   func(context.Context, *domain.AnimationEvent) { calls = append(calls, "b-end") },
	}

	chained := observability.ChainHooks(a, domain.LifecycleHooks{}, b)
	chained.OnAnimationStart(context.Background(), &domain.AnimationEvent{})
	chained.OnAnimationEnd(context.Background(), &domain.AnimationEvent{})

	assert.Equal(t, []string{"a", "b", "b-end"}, calls)
	assert.Nil(t, chained.OnAnimationCancel)
}
