package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/reel/internal/planner"
	"github.com/aretw0/reel/internal/runtime"
	"github.com/aretw0/reel/internal/testutils"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	starts  []*domain.AnimationEvent
	ends    []*domain.AnimationEvent
	cancels []*domain.AnimationEvent
}

func (r *recorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAnimationStart:  func(_ context.Context, e *domain.AnimationEvent) { r.starts = append(r.starts, e) },
		OnAnimationEnd:    func(_ context.Context, e *domain.AnimationEvent) { r.ends = append(r.ends, e) },
		OnAnimationCancel: func(_ context.Context, e *domain.AnimationEvent) { r.cancels = append(r.cancels, e) },
	}
}

func newController(t *testing.T, opts domain.Options, extra ...runtime.ControllerOption) (*runtime.Controller, *testutils.MockClock, *recorder) {
	t.Helper()
	clock := testutils.NewMockClock()
	rec := &recorder{}
	options := []runtime.ControllerOption{
		runtime.WithClock(clock),
		runtime.WithLifecycleHooks(rec.hooks()),
		runtime.WithPlanner(planner.New(planner.WithRandomSource(ports.NewSeededSource(1)))),
	}
	options = append(options, extra...)

	c, err := runtime.NewController("counter-1", opts, options...)
	require.NoError(t, err)
	return c, clock, rec
}

func text(tokens []domain.Token) string {
	return domain.JoinTokens(tokens)
}

func TestController_InitialDisplay(t *testing.T) {
	c, _, _ := newController(t, domain.Options{Value: 42})
	assert.Equal(t, "42", text(c.Display()))
	assert.Equal(t, domain.StateIdle, c.State())

	c, _, _ = newController(t, domain.Options{Value: 42, StartValue: 7})
	assert.Equal(t, "7", text(c.Display()))
}

func TestController_ValueChangeRunsToCompletion(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newController(t, domain.Options{Value: 120})

	require.NoError(t, c.SetValue(ctx, 125))
	assert.Equal(t, domain.StateRunning, c.State())
	require.Len(t, rec.starts, 1)
	assert.Equal(t, 1, rec.starts[0].Animated)
	assert.Equal(t, 3, rec.starts[0].Slots)

	clock.Advance(350 * time.Millisecond)
	frame := c.Tick(ctx)
	assert.Equal(t, domain.StateRunning, frame.State)
	assert.InDelta(t, 0.5, frame.Progress, 1e-9)
	assert.False(t, frame.Done)
	assert.Equal(t, "12", text(frame.Tokens[:2]), "static slots never move")

	clock.Advance(350 * time.Millisecond)
	frame = c.Tick(ctx)
	assert.Equal(t, domain.StateCompleted, frame.State)
	assert.True(t, frame.Done)
	assert.Equal(t, "125", frame.Text())
	assert.Equal(t, domain.StateIdle, c.State())
	require.Len(t, rec.ends, 1)
	assert.False(t, rec.ends[0].Stopped)

	frame = c.Tick(ctx)
	assert.Equal(t, domain.StateIdle, frame.State)
	assert.Len(t, rec.ends, 1)
}

func TestController_UnchangedValueIsNoop(t *testing.T) {
	c, _, rec := newController(t, domain.Options{Value: 5})
	require.NoError(t, c.SetValue(context.Background(), "5"))
	assert.Empty(t, rec.starts)
	assert.Equal(t, domain.StateIdle, c.State())
}

func TestController_Supersession(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newController(t, domain.Options{Value: 0, Duration: domain.Ptr(1.0)})

	require.NoError(t, c.SetValue(ctx, 100))
	first := c.Session()
	require.NotNil(t, first)

	clock.Advance(300 * time.Millisecond)
	midFrame := first.Frame(300 * time.Millisecond)

	require.NoError(t, c.SetValue(ctx, 200))
	second := c.Session()
	require.NotNil(t, second)

	assert.True(t, first.Cancelled)
	assert.False(t, second.Cancelled)
	require.Len(t, rec.cancels, 1)
	assert.Equal(t, first.ID, rec.cancels[0].SessionID)

	// The new session starts from what was on screen, not from the old target.
	starts := make([]domain.Token, len(second.Slots))
	for i, slot := range second.Slots {
		starts[i] = slot.Start
	}
	assert.Equal(t, text(midFrame), text(starts))

	clock.Advance(time.Second)
	frame := c.Tick(ctx)
	assert.Equal(t, "200", frame.Text())
	require.Len(t, rec.ends, 1)
	assert.Equal(t, second.ID, rec.ends[0].SessionID)
}

func TestController_StartValueOnce(t *testing.T) {
	ctx := context.Background()
	c, clock, _ := newController(t, domain.Options{Value: 200, StartValue: 100, StartValueOnce: true})

	require.NoError(t, c.Mount(ctx))
	s := c.Session()
	require.NotNil(t, s)
	assert.Equal(t, "100", startText(s))

	clock.Advance(time.Second)
	c.Tick(ctx)
	assert.Equal(t, "200", text(c.Display()))

	require.NoError(t, c.SetValue(ctx, 300))
	assert.Equal(t, "200", startText(c.Session()), "start value is consumed after the first animation")
}

func TestController_StartValueEveryTime(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newController(t, domain.Options{Value: 200, StartValue: 100})

	require.NoError(t, c.Mount(ctx))
	assert.Equal(t, "100", startText(c.Session()))

	clock.Advance(time.Second)
	c.Tick(ctx)

	require.NoError(t, c.SetValue(ctx, 300))
	assert.Equal(t, "100", startText(c.Session()))

	require.NoError(t, c.StartAnimation(ctx, nil))
	assert.Equal(t, "100", startText(c.Session()))

	// Superseding mid-flight still starts from the start value, not the reels on screen.
	clock.Advance(100 * time.Millisecond)
	c.Tick(ctx)
	require.Equal(t, domain.StateRunning, c.State())
	cancels := len(rec.cancels)
	require.NoError(t, c.SetValue(ctx, 400))
	assert.Len(t, rec.cancels, cancels+1)
	assert.Equal(t, "100", startText(c.Session()))
}

func TestController_MountWithoutStartValue(t *testing.T) {
	c, _, rec := newController(t, domain.Options{Value: 9})
	require.NoError(t, c.Mount(context.Background()))
	assert.Nil(t, c.Session())
	assert.Empty(t, rec.starts)
}

func TestController_ZeroDummyCountJumps(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newController(t, domain.Options{Value: 123, DummyCharacterCount: domain.Ptr(0)})

	require.NoError(t, c.SetValue(ctx, 456))
	s := c.Session()
	require.NotNil(t, s)
	require.Len(t, s.Slots, 3)
	for _, slot := range s.Slots {
		assert.Empty(t, slot.Filler)
	}
	assert.Equal(t, "456", text(c.Display()))
	assert.Equal(t, "456", c.Tick(ctx).Text())
}

func TestController_ZeroDurationCompletesImmediately(t *testing.T) {
	ctx := context.Background()
	c, _, rec := newController(t, domain.Options{Value: 1, Duration: domain.Ptr(0.0)})

	require.NoError(t, c.SetValue(ctx, 2))
	assert.Equal(t, domain.StateIdle, c.State())
	assert.Equal(t, "2", text(c.Display()))
	assert.Len(t, rec.starts, 1)
	assert.Len(t, rec.ends, 1)
}

func TestController_StartAnimationWithOverrides(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newController(t, domain.Options{Value: "54321"})

	err := c.StartAnimation(ctx, &domain.Overrides{
		Duration:            domain.Ptr(3.0),
		DummyCharacterCount: domain.Ptr(10),
		Direction:           domain.Ptr(domain.DirectionTopDown),
	})
	require.NoError(t, err)

	s := c.Session()
	require.NotNil(t, s)
	assert.InDelta(t, 3.0, s.TotalDuration.Seconds(), 1e-9)
	assert.True(t, s.Manual)
	for i, slot := range s.Slots {
		require.Len(t, slot.Filler, 10)
		assert.Equal(t, string("54321"[i]), slot.Filler[9].Text)
	}
	require.Len(t, rec.starts, 1)
	assert.True(t, rec.starts[0].Manual)

	// Overrides never stick.
	assert.Nil(t, c.Options().Duration)
	assert.Equal(t, 700*time.Millisecond, c.Options().BaseDuration())

	clock.Advance(3 * time.Second)
	assert.Equal(t, "54321", c.Tick(ctx).Text())
}

func TestController_StopAnimation(t *testing.T) {
	ctx := context.Background()
	c, clock, rec := newController(t, domain.Options{Value: 0})

	c.StopAnimation(ctx)
	assert.Empty(t, rec.ends, "stop while idle does nothing")

	require.NoError(t, c.SetValue(ctx, 987))
	clock.Advance(100 * time.Millisecond)
	c.StopAnimation(ctx)

	assert.Equal(t, domain.StateIdle, c.State())
	assert.Equal(t, "987", text(c.Display()))
	require.Len(t, rec.ends, 1)
	assert.True(t, rec.ends[0].Stopped)

	tl, err := c.Timeline()
	require.NoError(t, err)
	assert.Equal(t, "987", text(tl.Targets()))
}

func TestController_ManualStartWhenAutoStartIsOff(t *testing.T) {
	ctx := context.Background()
	c, _, rec := newController(t, domain.Options{Value: 10, AutoAnimationStart: domain.Ptr(false)})

	require.NoError(t, c.SetValue(ctx, 20))
	assert.True(t, c.Pending())
	assert.Equal(t, domain.StateIdle, c.State())
	assert.Equal(t, "10", text(c.Display()))
	assert.Empty(t, rec.starts)

	require.NoError(t, c.StartAnimation(ctx, nil))
	assert.False(t, c.Pending())
	assert.Equal(t, domain.StateRunning, c.State())
	assert.Equal(t, "20", text(c.Session().Targets()))
}

func TestController_InvalidInputsLeaveStateUntouched(t *testing.T) {
	ctx := context.Background()
	c, _, rec := newController(t, domain.Options{Value: 10})

	err := c.SetValue(ctx, []any{"a", 1})
	assert.ErrorIs(t, err, domain.ErrInvalidValueShape)

	err = c.SetValue(ctx, []any{new(int)})
	assert.ErrorIs(t, err, domain.ErrInvalidValueShape, "a text counter cannot switch to opaque units")

	err = c.StartAnimation(ctx, &domain.Overrides{Duration: domain.Ptr(-2.0)})
	assert.ErrorIs(t, err, domain.ErrConfigurationOutOfRange)

	assert.Equal(t, "10", text(c.Display()))
	assert.Equal(t, "10", c.Value().String())
	assert.Equal(t, domain.StateIdle, c.State())
	assert.Empty(t, rec.starts)

	_, err = c.Timeline()
	assert.ErrorIs(t, err, domain.ErrTimelineNotFound)

	// A rejected Configure must not pin the shape of its start value.
	blank, _, _ := newController(t, domain.Options{})
	err = blank.Configure(ctx, domain.Options{StartValue: "ab", Value: []any{1, 2}})
	assert.ErrorIs(t, err, domain.ErrInvalidValueShape)
	assert.Nil(t, blank.Options().StartValue)
	require.NoError(t, blank.SetValue(ctx, []any{1, 2}))
	assert.Equal(t, domain.ShapeOpaque, blank.Value().Shape())
}

func TestNewController_Validation(t *testing.T) {
	_, err := runtime.NewController("bad", domain.Options{Value: 1, Duration: domain.Ptr(-1.0)})
	assert.ErrorIs(t, err, domain.ErrConfigurationOutOfRange)

	_, err = runtime.NewController("bad", domain.Options{Value: map[string]int{}})
	assert.ErrorIs(t, err, domain.ErrInvalidValueShape)

	_, err = runtime.NewController("bad", domain.Options{Value: "12", StartValue: []any{new(int)}})
	assert.ErrorIs(t, err, domain.ErrInvalidValueShape)
}

func TestController_Configure(t *testing.T) {
	ctx := context.Background()
	c, _, rec := newController(t, domain.Options{Value: 1})

	require.NoError(t, c.Configure(ctx, domain.Options{Value: 2, SequentialAnimationMode: true}))
	require.Len(t, rec.starts, 1)
	assert.Equal(t, domain.ModeSequential, rec.starts[0].Mode)
	assert.Equal(t, 2, c.Options().Value)

	err := c.Configure(ctx, domain.Options{Value: 3, Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrConfigurationOutOfRange)
	assert.True(t, c.Options().SequentialAnimationMode)
}

func TestController_OpaqueUnits(t *testing.T) {
	ctx := context.Background()
	cherry, lemon, bell := new(string), new(string), new(string)
	*cherry, *lemon, *bell = "cherry", "lemon", "bell"

	c, clock, _ := newController(t, domain.Options{
		Value:           []any{cherry, lemon},
		DummyCharacters: []any{cherry, lemon, bell},
	})

	require.NoError(t, c.SetValue(ctx, []any{bell, bell, cherry}))
	clock.Advance(time.Second)
	frame := c.Tick(ctx)

	require.Len(t, frame.Tokens, 3)
	assert.Equal(t, bell, frame.Tokens[0].Unit)
	assert.Equal(t, bell, frame.Tokens[1].Unit)
	assert.Equal(t, cherry, frame.Tokens[2].Unit)
}

type failingSink struct{ ports.TimelineSink }

func (failingSink) Publish(context.Context, *domain.Timeline) error {
	return errors.New("sink offline")
}

func TestController_PublishesTimelines(t *testing.T) {
	ctx := context.Background()
	sink := memory.NewSink()
	c, _, _ := newController(t, domain.Options{Value: 1}, runtime.WithSink(sink))

	require.NoError(t, c.SetValue(ctx, 2))
	tl, err := sink.Latest(ctx, "counter-1")
	require.NoError(t, err)
	assert.Equal(t, c.Session().ID, tl.SessionID)
	assert.Equal(t, "2", text(tl.Targets()))

	broken, _, rec := newController(t, domain.Options{Value: 1}, runtime.WithSink(failingSink{}))
	require.NoError(t, broken.SetValue(ctx, 2), "sink failures are not propagated")
	assert.Len(t, rec.starts, 1)
}

func startText(s *domain.Session) string {
	starts := make([]domain.Token, len(s.Slots))
	for i, slot := range s.Slots {
		starts[i] = slot.Start
	}
	return text(starts)
}
