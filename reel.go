package reel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/internal/planner"
	"github.com/aretw0/reel/internal/runtime"
	"github.com/aretw0/reel/internal/tokenizer"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// Counter is the high-level entry point for the reel library.
// It wraps the internal controller and is safe for concurrent use.
// Lifecycle hooks run while the counter is locked and must not call back into it.
type Counter struct {
	mu   sync.Mutex
	ctrl *runtime.Controller
}

// Option defines a functional option for configuring a Counter.
type Option func(*settings)

type settings struct {
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	clock  ports.Clock
	random ports.RandomSource
	seed   *int64
	sink   ports.TimelineSink
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithClock sets the host clock (default: the wall clock).
func WithClock(clock ports.Clock) Option {
	return func(s *settings) {
		s.clock = clock
	}
}

// WithRandomSource sets the randomness behind filler selection.
// The source is used as is: sharing one between counters that are planned
// concurrently requires a source that is safe for concurrent use.
func WithRandomSource(src ports.RandomSource) Option {
	return func(s *settings) {
		s.random = src
		s.seed = nil
	}
}

// WithSeed makes filler selection reproducible.
// Every counter built with the option gets its own source seeded with seed.
func WithSeed(seed int64) Option {
	return func(s *settings) {
		s.random = nil
		s.seed = &seed
	}
}

// WithSink publishes every timeline the counter emits.
func WithSink(sink ports.TimelineSink) Option {
	return func(s *settings) {
		s.sink = sink
	}
}

func resolve(options []Option) settings {
	s := settings{}
	for _, opt := range options {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

func (s settings) planner() *planner.Planner {
	src := s.random
	if src == nil && s.seed != nil {
		src = ports.NewSeededSource(*s.seed)
	}
	return planner.New(planner.WithRandomSource(src))
}

// New creates a counter showing its start value (or its value) with no session running.
func New(id string, opts domain.Options, options ...Option) (*Counter, error) {
	s := resolve(options)

	ctrl, err := runtime.NewController(id, opts,
		runtime.WithLogger(s.logger),
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithClock(s.clock),
		runtime.WithPlanner(s.planner()),
		runtime.WithSink(s.sink),
	)
	if err != nil {
		return nil, err
	}
	return &Counter{ctrl: ctrl}, nil
}

// ID returns the counter identifier.
func (c *Counter) ID() string {
	return c.ctrl.ID()
}

// Mount plays the initial animation from the start value when auto start is on.
func (c *Counter) Mount(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.Mount(ctx)
}

// SetValue changes the target value. See runtime.Controller.SetValue.
func (c *Counter) SetValue(ctx context.Context, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.SetValue(ctx, v)
}

// Configure replaces the standing options.
func (c *Counter) Configure(ctx context.Context, opts domain.Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.Configure(ctx, opts)
}

// StartAnimation replays the counter with optional one-shot overrides.
func (c *Counter) StartAnimation(ctx context.Context, ov *domain.Overrides) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.StartAnimation(ctx, ov)
}

// StopAnimation snaps the counter to its target.
func (c *Counter) StopAnimation(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctrl.StopAnimation(ctx)
}

// Tick advances playback to the clock's current time and returns the frame to render.
func (c *Counter) Tick(ctx context.Context) domain.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.Tick(ctx)
}

// Display returns the currently displayed tokens.
func (c *Counter) Display() []domain.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.Display()
}

// Text returns the currently displayed text.
func (c *Counter) Text() string {
	return domain.JoinTokens(c.Display())
}

// State returns the controller state.
func (c *Counter) State() domain.ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.State()
}

// Pending reports whether a value change waits for StartAnimation.
func (c *Counter) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.Pending()
}

// Options returns the standing options.
func (c *Counter) Options() domain.Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.Options()
}

// Value returns the tokenized target value.
func (c *Counter) Value() domain.ValueSequence {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.Value()
}

// Session returns a copy of the active session, or nil when idle.
func (c *Counter) Session() *domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.ctrl.Session()
	if s == nil {
		return nil
	}
	cp := *s
	cp.Slots = make([]domain.SlotPlan, len(s.Slots))
	for i, slot := range s.Slots {
		slot.Filler = append([]domain.Token(nil), slot.Filler...)
		cp.Slots[i] = slot
	}
	return &cp
}

// Timeline returns the timeline of the active or last session.
func (c *Counter) Timeline() (*domain.Timeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl.Timeline()
}

// Tokenize splits a raw value into classified tokens.
func Tokenize(v any) (domain.ValueSequence, error) {
	return tokenizer.Tokenize(v)
}

// Preview plans the session a counter would play from old to next, without any state.
// Set manual to plan a replay in which every slot spins.
func Preview(old, next any, opts domain.Options, manual bool, options ...Option) (*domain.Session, error) {
	oldSeq, err := tokenizer.Tokenize(old)
	if err != nil {
		return nil, err
	}
	nextSeq, err := tokenizer.Tokenize(next)
	if err != nil {
		return nil, err
	}

	s := resolve(options)
	return s.planner().Plan(planner.Request{
		CounterID: "preview",
		Old:       oldSeq,
		New:       nextSeq,
		Options:   opts,
		Manual:    manual,
	})
}
