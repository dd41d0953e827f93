package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/testutils"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/aretw0/reel/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	sink := memory.NewSink()
	mgr := session.NewManager(session.WithSink(sink))

	c, err := mgr.Put(ctx, "b", domain.Options{Value: 10})
	require.NoError(t, err)
	assert.Equal(t, "10", c.Text())

	_, err = mgr.Put(ctx, "a", domain.Options{Value: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, mgr.List(ctx))

	got, err := mgr.Get(ctx, "b")
	require.NoError(t, err)
	assert.Same(t, c, got)

	// A second Put reconfigures the same counter.
	again, err := mgr.Put(ctx, "b", domain.Options{Value: 20})
	require.NoError(t, err)
	assert.Same(t, c, again)
	assert.Equal(t, "20", again.Value().String())

	_, err = sink.Latest(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, mgr.Delete(ctx, "b"))
	_, err = mgr.Get(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrCounterNotFound)
	_, err = sink.Latest(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrTimelineNotFound)

	assert.ErrorIs(t, mgr.Delete(ctx, "b"), domain.ErrCounterNotFound)
}

func TestManager_PutRejectsInvalidOptions(t *testing.T) {
	mgr := session.NewManager()
	_, err := mgr.Put(context.Background(), "bad", domain.Options{Value: 1, DummyCharacterCount: domain.Ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrConfigurationOutOfRange)
	assert.Empty(t, mgr.List(context.Background()))
}

func TestManager_Operations(t *testing.T) {
	ctx := context.Background()
	clock := testutils.NewMockClock()
	mgr := session.NewManager(session.WithCounterOptions(reel.WithClock(clock), reel.WithSeed(3)))

	_, err := mgr.Put(ctx, "idle", domain.Options{Value: 1})
	require.NoError(t, err)
	_, err = mgr.Put(ctx, "busy", domain.Options{Value: 1})
	require.NoError(t, err)

	require.NoError(t, mgr.SetValue(ctx, "busy", 2))
	assert.ErrorIs(t, mgr.SetValue(ctx, "ghost", 2), domain.ErrCounterNotFound)

	frames := mgr.TickAll(ctx)
	require.Len(t, frames, 1)
	assert.Equal(t, "busy", frames[0].CounterID)
	assert.False(t, frames[0].Done)

	clock.Advance(time.Second)
	frames = mgr.TickAll(ctx)
	require.Len(t, frames, 1)
	assert.True(t, frames[0].Done)
	assert.Equal(t, "2", frames[0].Text())
	assert.Empty(t, mgr.TickAll(ctx))

	require.NoError(t, mgr.StartAnimation(ctx, "idle", &domain.Overrides{Duration: domain.Ptr(2.0)}))
	require.NoError(t, mgr.StopAnimation(ctx, "idle"))
	assert.Empty(t, mgr.TickAll(ctx))

	err = mgr.StartAnimation(ctx, "idle", &domain.Overrides{Duration: domain.Ptr(-1.0)})
	assert.ErrorIs(t, err, domain.ErrConfigurationOutOfRange)
}

func TestManager_SeededCountersPlanConcurrently(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(session.WithCounterOptions(reel.WithSeed(11)))

	const n = 8
	for i := 0; i < n; i++ {
		_, err := mgr.Put(ctx, fmt.Sprintf("c%d", i), domain.Options{Value: 0})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for v := 1; v <= 20; v++ {
				assert.NoError(t, mgr.SetValue(ctx, id, v*1111))
			}
		}(fmt.Sprintf("c%d", i))
	}
	wg.Wait()

	first, err := mgr.Get(ctx, "c0")
	require.NoError(t, err)
	want, err := first.Timeline()
	require.NoError(t, err)
	for i := 1; i < n; i++ {
		c, err := mgr.Get(ctx, fmt.Sprintf("c%d", i))
		require.NoError(t, err)
		got, err := c.Timeline()
		require.NoError(t, err)
		assert.Equal(t, want.Targets(), got.Targets())
	}
}

func TestManager_MountsStartValue(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(session.WithCounterOptions(reel.WithClock(testutils.NewMockClock())))

	c, err := mgr.Put(ctx, "intro", domain.Options{Value: 500, StartValue: 0})
	require.NoError(t, err)
	assert.Equal(t, domain.StateRunning, c.State())
}

type fakeLocker struct {
	locks, unlocks int
}

func (f *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	f.locks++
	return func(context.Context) error {
		f.unlocks++
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &fakeLocker{}
	mgr := session.NewManager(session.WithLocker(locker), session.WithLockTTL(time.Second))

	_, err := mgr.Put(context.Background(), "c", domain.Options{Value: 1})
	require.NoError(t, err)
	require.NoError(t, mgr.SetValue(context.Background(), "c", 2))

	assert.Equal(t, 2, locker.locks)
	assert.Equal(t, 2, locker.unlocks)
}
