package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/pkg/ports"
	"github.com/aretw0/reel/pkg/runner"
)

// watchPreset replays the counter every time a preset document changes,
// reapplying the resolved options so edits show up immediately.
func watchPreset(ctx context.Context, opts PlayOptions, presets ports.PresetSource, r *runner.Runner, counter *reel.Counter, w io.Writer, logger *slog.Logger) error {
	watcher, ok := presets.(ports.Watchable)
	if !ok {
		return errors.New("--watch needs a presets directory")
	}

	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()
	ctx = signals.Context()

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	logger.Info("Starting watcher", "presets", opts.PresetsDir)
	if !opts.JSON {
		printSystemMessage(w, "Waiting for changes in '%s'...", opts.PresetsDir)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case id, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("Change detected", "preset", id)
			if err := replay(ctx, opts, presets, r, counter); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.Error("Replay failed", "preset", id, "err", err)
				if !opts.JSON {
					printSystemMessage(w, "Reload failed: %v", err)
				}
			}
		}
	}
}

func replay(ctx context.Context, opts PlayOptions, presets ports.PresetSource, r *runner.Runner, counter *reel.Counter) error {
	_, resolved, err := resolveOptions(ctx, opts.CounterOptions, presets)
	if err != nil {
		return err
	}
	// Keep the value the counter reached; only the animation settings change.
	resolved.Value = nil
	if err := counter.Configure(ctx, resolved); err != nil {
		return fmt.Errorf("apply options: %w", err)
	}
	if err := counter.StartAnimation(ctx, nil); err != nil {
		return err
	}
	return r.Run(ctx, counter)
}
