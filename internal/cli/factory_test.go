package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func presetsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "arcade.md", `---
title: Arcade
tags: [retro]
options:
  duration: 0.4
  dummy_character_count: 12
  sequential_animation_mode: true
---
Fast reels for **arcade** scores.`)
	return dir
}

func TestResolveOptions_FlagsOnly(t *testing.T) {
	id, opts, err := resolveOptions(context.Background(), CounterOptions{
		Set: []string{"value=1250", "duration=2", "direction=bottom-up"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultCounterID, id)
	assert.Equal(t, int64(1250), opts.Value)
	require.NotNil(t, opts.Duration)
	assert.Equal(t, 2.0, *opts.Duration)
	assert.Equal(t, domain.DirectionBottomUp, opts.ScrollDirection())
}

func TestResolveOptions_Layers(t *testing.T) {
	ctx := context.Background()
	co := CounterOptions{PresetsDir: presetsDir(t), Preset: "arcade", Set: []string{"dummy_character_count=3"}}
	presets, err := co.presetSource()
	require.NoError(t, err)

	_, opts, err := resolveOptions(ctx, co, presets)
	require.NoError(t, err)
	assert.Equal(t, 0.4, *opts.Duration)
	assert.Equal(t, 3, opts.DummyCount())
	assert.Equal(t, domain.ModeSequential, opts.Mode())
}

func TestResolveOptions_CountersFile(t *testing.T) {
	ctx := context.Background()
	dir := presetsDir(t)
	file := writeFile(t, t.TempDir(), "counters.yaml", `
counters:
  - id: visitors
    preset: arcade
    value: 1024
    direction: bottom-up
  - id: price
    value: "9.99"
`)
	co := CounterOptions{PresetsDir: dir, CountersFile: file, CounterID: "visitors"}
	presets, err := co.presetSource()
	require.NoError(t, err)

	id, opts, err := resolveOptions(ctx, co, presets)
	require.NoError(t, err)
	assert.Equal(t, "visitors", id)
	assert.EqualValues(t, 1024, opts.Value)
	assert.Equal(t, 0.4, *opts.Duration)
	assert.Equal(t, domain.DirectionBottomUp, opts.ScrollDirection())

	co.CounterID = ""
	_, _, err = resolveOptions(ctx, co, presets)
	assert.ErrorContains(t, err, "defines 2 counters")

	co.CounterID = "missing"
	_, _, err = resolveOptions(ctx, co, presets)
	assert.ErrorIs(t, err, domain.ErrCounterNotFound)
}

func TestResolveOptions_Errors(t *testing.T) {
	ctx := context.Background()

	_, _, err := resolveOptions(ctx, CounterOptions{Preset: "arcade"}, nil)
	assert.ErrorContains(t, err, "no presets directory")

	co := CounterOptions{PresetsDir: presetsDir(t), Preset: "missing"}
	presets, err := co.presetSource()
	require.NoError(t, err)
	_, _, err = resolveOptions(ctx, co, presets)
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)

	_, _, err = resolveOptions(ctx, CounterOptions{Set: []string{"bogus=1"}}, nil)
	assert.Error(t, err)
}

func TestCreateCounter(t *testing.T) {
	logger := createLogger(false)
	co := CounterOptions{CounterID: "score", Set: []string{"value=77"}, Seed: 3}
	id, opts, err := resolveOptions(context.Background(), co, nil)
	require.NoError(t, err)

	counter, err := createCounter(id, opts, co, logger)
	require.NoError(t, err)
	assert.Equal(t, "score", counter.ID())
	assert.Equal(t, "77", counter.Text())

	duration := -1.0
	_, err = createCounter("bad", domain.Options{Value: 1, Duration: &duration}, co, logger)
	assert.ErrorContains(t, err, "error initializing counter")
}
