package runner

import (
	"context"

	"github.com/aretw0/reel/pkg/domain"
)

// FrameHandler defines the strategy for presenting frames.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type FrameHandler interface {
	// Frame presents an intermediate frame.
	Frame(ctx context.Context, frame domain.Frame) error

	// Done presents the final frame of a run.
	Done(ctx context.Context, frame domain.Frame) error
}

// Ticker advances on every host clock tick. *reel.Counter satisfies it.
type Ticker interface {
	Tick(ctx context.Context) domain.Frame
}

// Stopper is implemented by tickers that can snap to their target.
type Stopper interface {
	StopAnimation(ctx context.Context)
}

// FrameRenderer turns a frame into the text a TextHandler prints.
type FrameRenderer func(domain.Frame) string
