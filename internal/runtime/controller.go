// Package runtime implements the animation controller: the per-counter state machine that
// owns session lifecycle, the displayed-token snapshot and the start value flag.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/reel/internal/planner"
	"github.com/aretw0/reel/internal/tokenizer"
	"github.com/aretw0/reel/internal/validator"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// Controller drives the animation of a single counter instance.
//
// It never blocks: triggers build (or supersede) a session and return, and playback only
// advances when the host calls Tick. A Controller is owned by one host; callers that share
// it across goroutines must serialize access.
type Controller struct {
	id      string
	opts    domain.Options
	planner *planner.Planner
	clock   ports.Clock
	sink    ports.TimelineSink
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	value domain.ValueSequence
	start *domain.ValueSequence
	shape domain.Shape

	state   domain.ControllerState
	session *domain.Session
	last    *domain.Session
	display []domain.Token

	startConsumed bool
	pending       bool
	mounted       bool
}

// NewController validates the options and builds an idle controller showing its
// start value (or its value when no start value is set).
func NewController(id string, opts domain.Options, options ...ControllerOption) (*Controller, error) {
	c := &Controller{
		id:    id,
		state: domain.StateIdle,
	}
	defaults(c)
	for _, opt := range options {
		opt(c)
	}
	c.logger = c.logger.With("counter", id)

	if err := c.load(opts); err != nil {
		return nil, err
	}

	if c.start != nil {
		c.display = c.start.Tokens()
	} else {
		c.display = c.value.Tokens()
	}
	return c, nil
}

// ID returns the counter identifier.
func (c *Controller) ID() string {
	return c.id
}

// Options returns the standing options.
func (c *Controller) Options() domain.Options {
	return c.opts
}

// Value returns the tokenized target value.
func (c *Controller) Value() domain.ValueSequence {
	return c.value
}

// State returns the lifecycle state.
func (c *Controller) State() domain.ControllerState {
	return c.state
}

// Pending reports whether a value change is waiting for StartAnimation.
func (c *Controller) Pending() bool {
	return c.pending
}

// Display returns a copy of the currently displayed tokens.
func (c *Controller) Display() []domain.Token {
	out := make([]domain.Token, len(c.display))
	copy(out, c.display)
	return out
}

// Session returns the active session, or nil when idle.
func (c *Controller) Session() *domain.Session {
	return c.session
}

// Timeline returns the timeline of the active session, or of the last finished one.
func (c *Controller) Timeline() (*domain.Timeline, error) {
	switch {
	case c.session != nil:
		return c.session.Timeline(), nil
	case c.last != nil:
		return c.last.Timeline(), nil
	}
	return nil, fmt.Errorf("counter %q: %w", c.id, domain.ErrTimelineNotFound)
}

// Mount plays the initial animation from the start value, once.
// It does nothing when auto start is off or no start value is configured.
func (c *Controller) Mount(ctx context.Context) error {
	if c.mounted {
		return nil
	}
	c.mounted = true

	if c.start == nil || !c.opts.AutoStart() {
		return nil
	}
	return c.trigger(ctx, c.opts, false)
}

// SetValue changes the target value.
// An unchanged value is a no-op. With auto start on, the change triggers a session;
// otherwise it waits for StartAnimation. Invalid values leave the controller untouched.
func (c *Controller) SetValue(ctx context.Context, v any) error {
	seq, err := tokenizer.Tokenize(v)
	if err != nil {
		return err
	}
	if err := c.checkShape(seq); err != nil {
		return err
	}
	if seq.Equal(c.value) {
		return nil
	}

	prev := c.value
	c.value = seq
	if !c.opts.AutoStart() {
		c.adopt(seq)
		c.opts.Value = v
		c.pending = true
		return nil
	}

	if err := c.trigger(ctx, c.opts, false); err != nil {
		c.value = prev
		return err
	}
	c.adopt(seq)
	c.opts.Value = v
	return nil
}

// Configure replaces the standing options. A changed value behaves like SetValue.
func (c *Controller) Configure(ctx context.Context, opts domain.Options) error {
	if err := validator.ValidateOptions(opts); err != nil {
		return err
	}

	if _, err := planner.ResolvePool(opts.DummyCharacters); err != nil {
		return fmt.Errorf("dummy characters: %w", err)
	}

	// A start value may fix the shape; undo that if the new value is rejected.
	prevShape := c.shape
	start, err := c.tokenizeStart(opts.StartValue)
	if err != nil {
		return err
	}

	value := opts.Value
	opts.Value = c.opts.Value
	prevStart := c.start
	prevOpts := c.opts

	c.opts = opts
	c.start = start
	if value == nil {
		return nil
	}
	if err := c.SetValue(ctx, value); err != nil {
		c.opts = prevOpts
		c.start = prevStart
		c.shape = prevShape
		return err
	}
	return nil
}

// StartAnimation replays the counter towards its value. Every slot spins.
// Overrides apply to this call only.
func (c *Controller) StartAnimation(ctx context.Context, ov *domain.Overrides) error {
	if err := validator.ValidateOverrides(ov); err != nil {
		return err
	}
	if err := c.trigger(ctx, c.opts.WithOverrides(ov), true); err != nil {
		return err
	}
	c.pending = false
	return nil
}

// StopAnimation snaps every slot to its target and ends the active session.
func (c *Controller) StopAnimation(ctx context.Context) {
	if c.session == nil {
		return
	}
	c.complete(ctx, true)
}

// Tick consults the clock, advances the displayed tokens and completes the session
// once its total duration has elapsed.
func (c *Controller) Tick(ctx context.Context) domain.Frame {
	if c.session == nil {
		return c.frame(nil, 1)
	}

	s := c.session
	elapsed := c.elapsed()
	c.display = s.Frame(elapsed)

	progress := 1.0
	if s.TotalDuration > 0 {
		progress = min(float64(elapsed)/float64(s.TotalDuration), 1)
	}

	if s.Done(elapsed) {
		c.complete(ctx, false)
		f := c.frame(s, 1)
		f.State = domain.StateCompleted
		return f
	}
	return c.frame(s, progress)
}

// trigger plans a session from the resolved old value and starts it,
// superseding any session in flight.
func (c *Controller) trigger(ctx context.Context, opts domain.Options, manual bool) error {
	now := c.clock.Now()

	// 1. Freeze the in-flight session where it is
	display := c.display
	if c.session != nil {
		display = c.session.Frame(now.Sub(c.session.StartedAt))
	}

	// 2. Plan from the resolved old value
	old, consumes := c.resolveOld(opts, display)
	session, err := c.planner.Plan(planner.Request{
		CounterID: c.id,
		Old:       old,
		New:       c.value,
		Options:   opts,
		Manual:    manual,
	})
	if err != nil {
		return err
	}
	if consumes {
		c.startConsumed = true
	}

	// 3. Supersede
	if prev := c.session; prev != nil {
		prev.Cancelled = true
		c.logger.DebugContext(ctx, "animation superseded", "session", prev.ID, "by", session.ID)
		c.emit(ctx, c.hooks.OnAnimationCancel, c.event(domain.EventAnimationCancel, prev))
	}

	// 4. Start
	session.StartedAt = now
	c.session = session
	c.state = domain.StateRunning
	c.display = session.Frame(0)

	c.logger.DebugContext(ctx, "animation started",
		"session", session.ID,
		"mode", session.Mode,
		"slots", len(session.Slots),
		"total", session.TotalDuration,
		"manual", manual,
	)
	c.publish(ctx, session)
	c.emit(ctx, c.hooks.OnAnimationStart, c.event(domain.EventAnimationStart, session))

	if session.Done(0) {
		c.complete(ctx, false)
	}
	return nil
}

// resolveOld picks the old sequence for the next session and reports whether
// using it consumes the start value.
func (c *Controller) resolveOld(opts domain.Options, display []domain.Token) (domain.ValueSequence, bool) {
	if c.start != nil {
		if !opts.StartValueOnce {
			return *c.start, false
		}
		if !c.startConsumed {
			return *c.start, true
		}
	}
	return domain.NewValueSequence(c.currentShape(), planner.Trim(display)), false
}

func (c *Controller) complete(ctx context.Context, stopped bool) {
	s := c.session
	c.display = s.Targets()
	c.state = domain.StateCompleted

	evt := c.event(domain.EventAnimationEnd, s)
	evt.Stopped = stopped
	c.logger.DebugContext(ctx, "animation ended", "session", s.ID, "stopped", stopped)
	c.emit(ctx, c.hooks.OnAnimationEnd, evt)

	c.last = s
	c.session = nil
	c.state = domain.StateIdle
}

func (c *Controller) publish(ctx context.Context, s *domain.Session) {
	if c.sink == nil {
		return
	}
	if err := c.sink.Publish(ctx, s.Timeline()); err != nil {
		c.logger.WarnContext(ctx, "failed to publish timeline", "session", s.ID, "error", err)
	}
}

func (c *Controller) emit(ctx context.Context, hook func(context.Context, *domain.AnimationEvent), evt *domain.AnimationEvent) {
	if hook != nil {
		hook(ctx, evt)
	}
}

func (c *Controller) event(typ domain.EventType, s *domain.Session) *domain.AnimationEvent {
	animated := 0
	for _, slot := range s.Slots {
		if slot.Animated {
			animated++
		}
	}
	return &domain.AnimationEvent{
		EventBase: domain.EventBase{
			Timestamp: c.clock.Now(),
			Type:      typ,
			CounterID: c.id,
		},
		SessionID:     s.ID,
		Mode:          s.Mode,
		Slots:         len(s.Slots),
		Animated:      animated,
		TotalDuration: s.TotalDuration,
		Manual:        s.Manual,
	}
}

func (c *Controller) frame(s *domain.Session, progress float64) domain.Frame {
	f := domain.Frame{
		CounterID: c.id,
		State:     c.state,
		Tokens:    c.Display(),
		Direction: c.opts.ScrollDirection(),
		Progress:  progress,
		Done:      c.session == nil,
	}
	if s != nil {
		f.SessionID = s.ID
		f.Direction = s.Direction
	}
	return f
}

func (c *Controller) elapsed() time.Duration {
	return c.clock.Now().Sub(c.session.StartedAt)
}
