package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Runner plays a ticker to completion at a fixed frame rate.
type Runner struct {
	// Handler presents frames. Defaults to a TextHandler on Stdout.
	Handler FrameHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Interval is the time between ticks.
	Interval time.Duration
}

// NewRunner creates a runner ticking at DefaultFrameRate.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Interval: time.Second / DefaultFrameRate,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdout)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run ticks t until its frame reports Done.
//
// When ctx is cancelled first, a Stopper is snapped to its target and the final frame is
// still presented; the context error is returned.
func (r *Runner) Run(ctx context.Context, t Ticker) error {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	frames := 0
	for {
		// 1. Advance
		frame := t.Tick(ctx)
		frames++

		// 2. Present
		if frame.Done {
			r.Logger.DebugContext(ctx, "run finished", "counter", frame.CounterID, "frames", frames)
			if err := r.Handler.Done(ctx, frame); err != nil {
				return fmt.Errorf("present final frame: %w", err)
			}
			return nil
		}
		if err := r.Handler.Frame(ctx, frame); err != nil {
			return fmt.Errorf("present frame: %w", err)
		}

		// 3. Wait for the host clock
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return r.interrupt(ctx, t)
		}
	}
}

// RunWithSignals is Run with Ctrl+C wired to cancellation.
func (r *Runner) RunWithSignals(ctx context.Context, t Ticker) error {
	signals := NewSignalManager(ctx)
	defer signals.Stop()
	return r.Run(signals.Context(), t)
}

func (r *Runner) interrupt(ctx context.Context, t Ticker) error {
	// Present the snapped frame with a live context so handlers still write.
	final := context.WithoutCancel(ctx)
	if s, ok := t.(Stopper); ok {
		s.StopAnimation(final)
	}
	frame := t.Tick(final)
	r.Logger.DebugContext(final, "run interrupted", "counter", frame.CounterID)
	if err := r.Handler.Done(final, frame); err != nil {
		return fmt.Errorf("present final frame: %w", err)
	}
	return ctx.Err()
}
