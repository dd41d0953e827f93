package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/reel/internal/presentation/tui"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/aretw0/reel/pkg/ports"
	"gopkg.in/yaml.v3"
)

// DescribeOptions contains all the configuration for the describe command.
type DescribeOptions struct {
	PresetsDir string
	// Preset to describe. Empty lists every preset.
	Preset string
	// Style is a glamour style name. Empty picks one from the terminal.
	Style string
}

// Describe renders a preset, or the preset index, as markdown.
func Describe(ctx context.Context, opts DescribeOptions, w io.Writer) error {
	if opts.PresetsDir == "" {
		opts.PresetsDir = "."
	}
	presets, err := CounterOptions{PresetsDir: opts.PresetsDir}.presetSource()
	if err != nil {
		return err
	}

	var md string
	if opts.Preset == "" {
		md, err = presetIndex(ctx, presets)
	} else {
		md, err = presetPage(ctx, presets, opts.Preset)
	}
	if err != nil {
		return err
	}

	style := opts.Style
	if style == "" && !isTerminal(w) {
		style = "notty"
	}
	render, err := tui.NewRenderer(style, terminalWidth(w, 80))
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func presetIndex(ctx context.Context, presets ports.PresetSource) (string, error) {
	ids, err := presets.ListPresets(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# Presets\n\n")
	if len(ids) == 0 {
		sb.WriteString("_No presets found._\n")
	}
	for _, id := range ids {
		p, err := presets.GetPreset(ctx, id)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "- **%s**", id)
		if p.Title != "" {
			fmt.Fprintf(&sb, " %s", p.Title)
		}
		if len(p.Tags) > 0 {
			fmt.Fprintf(&sb, " `%s`", strings.Join(p.Tags, "` `"))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func presetPage(ctx context.Context, presets ports.PresetSource, id string) (string, error) {
	p, err := presets.GetPreset(ctx, id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	title := p.Title
	if title == "" {
		title = p.ID
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(p.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: `%s`\n\n", strings.Join(p.Tags, "` `"))
	}
	if p.Notes != "" {
		sb.WriteString(p.Notes + "\n\n")
	} else if p.Description != "" {
		sb.WriteString(p.Description + "\n\n")
	}

	rows, err := optionRows(p.Options)
	if err != nil {
		return "", err
	}
	sb.WriteString("## Options\n\n")
	sb.WriteString("| Option | Value |\n|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", row[0], row[1])
	}
	fmt.Fprintf(&sb, "\nResolved: %s, %s, %s base duration.\n", p.Options.Mode(), p.Options.ScrollDirection(), p.Options.BaseDuration())
	return sb.String(), nil
}

// optionRows lists the options that are set, keyed by their file names.
func optionRows(opts domain.Options) ([][2]string, error) {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return nil, err
	}
	var set map[string]any
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][2]string, 0, len(keys))
	for _, k := range keys {
		if set[k] == nil {
			continue
		}
		rows = append(rows, [2]string{k, fmt.Sprint(set[k])})
	}
	return rows, nil
}
