package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/presentation/tui"
	"github.com/aretw0/reel/pkg/runner"
)

// PlayOptions contains all the configuration for the play command.
type PlayOptions struct {
	CounterOptions

	// Values are played in order after the initial animation.
	// The first one is the counter's value when none is configured.
	Values []string
	// From seeds the first animation. Same as --set start_value=...
	From string

	JSON  bool
	FPS   int
	Quiet bool
	// Watch replays the counter whenever its preset changes on disk.
	Watch bool
}

// Play animates a counter through opts.Values and presents every frame on w.
func Play(ctx context.Context, opts PlayOptions, w io.Writer) error {
	logger := createLogger(opts.Debug)

	if opts.From != "" {
		opts.Set = append([]string{"start_value=" + opts.From}, opts.Set...)
	}

	presets, err := opts.presetSource()
	if err != nil {
		return err
	}
	id, resolved, err := resolveOptions(ctx, opts.CounterOptions, presets)
	if err != nil {
		return err
	}
	values := opts.Values
	if resolved.Value == nil {
		if len(values) == 0 {
			return errors.New("no value to play: pass one as an argument or with --set value=...")
		}
		resolved.Value = ParseValue(values[0])
		values = values[1:]
	}
	counter, err := createCounter(id, resolved, opts.CounterOptions, logger)
	if err != nil {
		return err
	}

	if !opts.JSON && !opts.Quiet && isTerminal(w) {
		tui.PrintBanner(w, colorProfile(w))
	}

	r := createRunner(opts, w, logger, counter.Options().UseMonospaceWidth)
	if err := playValues(ctx, r, counter, values); err != nil {
		return handleExecutionError(err)
	}

	if opts.Watch {
		return handleExecutionError(watchPreset(ctx, opts, presets, r, counter, w, logger))
	}
	return nil
}

// createRunner prepares a runner presenting frames as JSON lines or styled text.
func createRunner(opts PlayOptions, w io.Writer, logger *slog.Logger, monospace bool) *runner.Runner {
	rOpts := []runner.Option{runner.WithLogger(logger)}
	if opts.FPS > 0 {
		rOpts = append(rOpts, runner.WithFrameRate(opts.FPS))
	}

	if opts.JSON {
		rOpts = append(rOpts, runner.WithHandler(runner.NewJSONHandler(w)))
	} else {
		renderer := tui.NewReelRenderer(colorProfile(w))
		renderer.Monospace = monospace

		handler := runner.NewTextHandler(w)
		handler.Renderer = renderer.Render
		handler.Inline = isTerminal(w)
		rOpts = append(rOpts, runner.WithHandler(handler))
	}
	return runner.NewRunner(rOpts...)
}

// playValues runs the mount animation, then one animation per value.
func playValues(ctx context.Context, r *runner.Runner, counter *reel.Counter, values []string) error {
	if err := counter.Mount(ctx); err != nil {
		return err
	}
	if err := r.RunWithSignals(ctx, counter); err != nil {
		return err
	}

	for _, v := range values {
		if err := counter.SetValue(ctx, ParseValue(v)); err != nil {
			return fmt.Errorf("value %q: %w", v, err)
		}
		if counter.Pending() {
			if err := counter.StartAnimation(ctx, nil); err != nil {
				return err
			}
		}
		if err := r.RunWithSignals(ctx, counter); err != nil {
			return err
		}
	}
	return nil
}
