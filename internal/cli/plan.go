package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/internal/presentation/graph"
	"github.com/aretw0/reel/internal/presentation/tui"
	"github.com/aretw0/reel/pkg/domain"
)

// Plan output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatGantt = "gantt"
)

// PlanOptions contains all the configuration for the plan command.
type PlanOptions struct {
	CounterOptions

	From   string
	To     string
	Manual bool
	Format string
}

// Plan prints the timeline a counter would play from opts.From to opts.To.
func Plan(ctx context.Context, opts PlanOptions, w io.Writer) error {
	presets, err := opts.presetSource()
	if err != nil {
		return err
	}
	id, resolved, err := resolveOptions(ctx, opts.CounterOptions, presets)
	if err != nil {
		return err
	}

	var from any
	if opts.From != "" {
		from = ParseValue(opts.From)
	}
	session, err := reel.Preview(from, ParseValue(opts.To), resolved, opts.Manual,
		counterSettings(opts.CounterOptions, createLogger(opts.Debug))...)
	if err != nil {
		return err
	}

	tl := session.Timeline()
	if opts.CounterID != "" || opts.CountersFile != "" {
		tl.CounterID = id
	}

	switch opts.Format {
	case "", FormatText:
		return writeTimeline(w, tl)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tl)
	case FormatGantt:
		_, err := io.WriteString(w, graph.GenerateGantt(tl, nil))
		return err
	default:
		return fmt.Errorf("unknown format %q (supported: %s, %s, %s)", opts.Format, FormatText, FormatJSON, FormatGantt)
	}
}

// writeTimeline prints one row per slot, most significant slot first.
func writeTimeline(w io.Writer, tl *domain.Timeline) error {
	fmt.Fprintf(w, "counter %s · %s · %s · %s\n", tl.CounterID, tl.Mode, tl.Direction, domain.Seconds(tl.TotalDuration))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tFROM\tTO\tSTART\tDURATION\tREEL")
	for i, slot := range tl.Slots {
		first, last := domain.Blank(), domain.Blank()
		if n := len(slot.Tokens); n > 0 {
			first, last = slot.Tokens[0], slot.Tokens[n-1]
		}
		strip := "-"
		if slot.Animated {
			strip = stripText(slot.Tokens)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.3fs\t%.3fs\t%s\n",
			i, cellText(first), cellText(last), slot.StartOffset, slot.Duration, strip)
	}
	return tw.Flush()
}

func cellText(t domain.Token) string {
	if text := tui.TokenText(t); text != "" {
		return text
	}
	return "_"
}

// stripText shortens long strips to their ends.
func stripText(tokens []domain.Token) string {
	const keep = 3
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, cellText(t))
	}
	if len(parts) > 2*keep+1 {
		head := strings.Join(parts[:keep], "")
		tail := strings.Join(parts[len(parts)-keep:], "")
		return fmt.Sprintf("%s…%s (%d)", head, tail, len(parts))
	}
	return strings.Join(parts, "")
}
