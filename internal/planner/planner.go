package planner

import (
	"fmt"

	"github.com/aretw0/reel/internal/validator"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/google/uuid"
)

// Request is everything needed to plan one session.
type Request struct {
	CounterID string
	Old       domain.ValueSequence
	New       domain.ValueSequence
	Options   domain.Options

	// Manual marks an imperative replay: every slot animates.
	Manual bool
}

// Planner builds sessions. It is safe to share between counters only if its
// random source is.
type Planner struct {
	builder *Builder
	newID   func() string
}

// Option configures a Planner.
type Option func(*Planner)

// WithRandomSource sets the randomness behind filler selection.
func WithRandomSource(src ports.RandomSource) Option {
	return func(p *Planner) {
		p.builder = NewBuilder(src)
	}
}

// WithIDGenerator overrides the session ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(p *Planner) {
		p.newID = fn
	}
}

// New creates a planner with a time-seeded source and UUID session IDs.
func New(opts ...Option) *Planner {
	p := &Planner{
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.builder == nil {
		p.builder = NewBuilder(nil)
	}
	return p
}

// Plan aligns, fills and schedules a session. The returned session has no start time.
func (p *Planner) Plan(req Request) (*domain.Session, error) {
	if err := validator.ValidateOptions(req.Options); err != nil {
		return nil, err
	}
	if req.Old.Len() > 0 && req.Old.Shape() != req.New.Shape() {
		return nil, &domain.ShapeError{Reason: fmt.Sprintf("cannot animate from %s to %s", req.Old.Shape(), req.New.Shape())}
	}

	pool, err := ResolvePool(req.Options.DummyCharacters)
	if err != nil {
		return nil, fmt.Errorf("dummy characters: %w", err)
	}

	start, target := Align(req.Old, req.New)
	count := req.Options.DummyCount()

	slots := make([]domain.SlotPlan, len(target))
	for i := range target {
		animated := req.Manual || req.Options.AnimateUnchanged || !start[i].Equal(target[i])
		slot := domain.SlotPlan{
			Index:    i,
			Start:    start[i],
			Target:   target[i],
			Animated: animated,
		}
		if animated {
			slot.Filler = p.builder.Filler(target[i], count, pool)
		}
		slots[i] = slot
	}

	mode := req.Options.Mode()
	total := Schedule(slots, mode, req.Options.BaseDuration())

	return &domain.Session{
		ID:                p.newID(),
		CounterID:         req.CounterID,
		Slots:             slots,
		Mode:              mode,
		Direction:         req.Options.ScrollDirection(),
		TotalDuration:     total,
		Manual:            req.Manual,
		UseMonospaceWidth: req.Options.UseMonospaceWidth,
	}, nil
}
