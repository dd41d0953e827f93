package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/reel/internal/presentation/tui"
	"github.com/aretw0/reel/pkg/runner"
	"github.com/gdamore/tcell/v2"
)

// DemoOptions contains all the configuration for the demo command.
type DemoOptions struct {
	CounterOptions
	FPS int
}

// RunDemo opens the interactive playground on the terminal.
func RunDemo(ctx context.Context, opts DemoOptions) error {
	logger := createLogger(opts.Debug)

	presets, err := opts.presetSource()
	if err != nil {
		return err
	}
	id, resolved, err := resolveOptions(ctx, opts.CounterOptions, presets)
	if err != nil {
		return err
	}
	if resolved.Value == nil {
		resolved.Value = int64(0)
	}
	counter, err := createCounter(id, resolved, opts.CounterOptions, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()
	ctx = signals.Context()

	if err := counter.Mount(ctx); err != nil {
		return err
	}

	interval := time.Second / runner.DefaultFrameRate
	if opts.FPS > 0 {
		interval = time.Second / time.Duration(opts.FPS)
	}
	return handleExecutionError(tui.NewPlayground(screen, counter, interval).Run(ctx))
}
