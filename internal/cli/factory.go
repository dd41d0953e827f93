package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/config"
	"github.com/aretw0/reel/internal/logging"
	"github.com/aretw0/reel/pkg/adapters/file"
	"github.com/aretw0/reel/pkg/adapters/loam"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
)

// DefaultCounterID names counters built from flags alone.
const DefaultCounterID = "cli"

// CounterOptions selects where a command takes its counter options from.
// Layers apply in order: preset, counters file entry, then --set flags.
type CounterOptions struct {
	PresetsDir   string
	Preset       string
	CountersFile string
	CounterID    string
	Set          []string
	Seed         int64
	Debug        bool

	// Record keeps the latest timeline of the counter as JSON in this directory.
	Record string
}

// presetSource opens the presets directory, or returns nil when none is needed.
func (o CounterOptions) presetSource() (ports.PresetSource, error) {
	if o.PresetsDir == "" {
		return nil, nil
	}
	loader, err := loam.Open(o.PresetsDir)
	if err != nil {
		return nil, err
	}
	return loader, nil
}

// resolveOptions layers the configured sources into the options of one counter.
func resolveOptions(ctx context.Context, o CounterOptions, presets ports.PresetSource) (string, domain.Options, error) {
	id := o.CounterID
	var opts domain.Options

	if o.Preset != "" {
		p, err := getPreset(ctx, presets, o.Preset)
		if err != nil {
			return "", opts, err
		}
		opts = p.Options
	}

	if o.CountersFile != "" {
		spec, err := pickCounter(o.CountersFile, o.CounterID)
		if err != nil {
			return "", opts, err
		}
		id = spec.ID

		var preset *domain.Preset
		if spec.Preset != "" {
			if preset, err = getPreset(ctx, presets, spec.Preset); err != nil {
				return "", opts, err
			}
		} else if o.Preset != "" {
			preset = &domain.Preset{ID: o.Preset, Options: opts}
		}
		if opts, err = spec.Resolve(preset); err != nil {
			return "", opts, err
		}
	}

	raw, err := parseAssignments(o.Set)
	if err != nil {
		return "", opts, err
	}
	if err := config.DecodeOptionsInto(raw, &opts); err != nil {
		return "", opts, fmt.Errorf("--set: %w", err)
	}

	if id == "" {
		id = DefaultCounterID
	}
	return id, opts, nil
}

func getPreset(ctx context.Context, presets ports.PresetSource, id string) (*domain.Preset, error) {
	if presets == nil {
		return nil, fmt.Errorf("preset %q requested but no presets directory is configured", id)
	}
	return presets.GetPreset(ctx, id)
}

func pickCounter(path, id string) (config.CounterSpec, error) {
	specs, err := config.LoadCounters(path)
	if err != nil {
		return config.CounterSpec{}, err
	}
	if id == "" {
		if len(specs) == 1 {
			return specs[0], nil
		}
		return config.CounterSpec{}, fmt.Errorf("%s defines %d counters; pick one with --counter", path, len(specs))
	}
	for _, spec := range specs {
		if spec.ID == id {
			return spec, nil
		}
	}
	return config.CounterSpec{}, fmt.Errorf("%w: %s in %s", domain.ErrCounterNotFound, id, path)
}

// counterSettings builds the facade options shared by every command.
func counterSettings(o CounterOptions, logger *slog.Logger) []reel.Option {
	opts := []reel.Option{reel.WithLogger(logger)}
	if o.Seed != 0 {
		opts = append(opts, reel.WithSeed(o.Seed))
	}
	if o.Debug {
		opts = append(opts, reel.WithLifecycleHooks(logging.DebugHooks(logger)))
	}
	if o.Record != "" {
		opts = append(opts, reel.WithSink(file.New(o.Record)))
	}
	return opts
}

// createCounter builds a counter from resolved options.
func createCounter(id string, opts domain.Options, o CounterOptions, logger *slog.Logger) (*reel.Counter, error) {
	counter, err := reel.New(id, opts, counterSettings(o, logger)...)
	if err != nil {
		return nil, fmt.Errorf("error initializing counter: %w", err)
	}
	return counter, nil
}
