// Package graph renders animation timelines as Mermaid diagrams.
package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/reel/pkg/domain"
)

// GanttOverlay marks the progress of a running session on the chart.
type GanttOverlay struct {
	// Elapsed is the time since the session started, in seconds.
	Elapsed float64
}

// GenerateGantt produces a Mermaid gantt chart with one task per slot.
// Tasks are labelled "index start → target" and styled by kind:
// - Static slot: milestone
// - Animated slot: plain task, or done/active when an overlay is given
func GenerateGantt(tl *domain.Timeline, overlay *GanttOverlay) string {
	var sb strings.Builder
	sb.WriteString("gantt\n")
	fmt.Fprintf(&sb, "    title counter %s (%s, %s)\n", sanitizeLabel(tl.CounterID), tl.Mode, domain.Seconds(tl.TotalDuration))
	sb.WriteString("    dateFormat x\n")
	sb.WriteString("    axisFormat %S.%L\n")
	fmt.Fprintf(&sb, "    section %s\n", tl.Direction)

	for i, slot := range tl.Slots {
		first, last := domain.Blank(), domain.Blank()
		if n := len(slot.Tokens); n > 0 {
			first, last = slot.Tokens[0], slot.Tokens[n-1]
		}
		label := fmt.Sprintf("%d %s → %s", i, tokenLabel(first), tokenLabel(last))
		start := millis(slot.StartOffset)
		end := millis(slot.StartOffset + slot.Duration)

		var tags []string
		switch {
		case !slot.Animated || slot.Duration == 0:
			tags = append(tags, "milestone")
		case overlay != nil && overlay.Elapsed >= slot.StartOffset+slot.Duration:
			tags = append(tags, "done")
		case overlay != nil && overlay.Elapsed >= slot.StartOffset:
			tags = append(tags, "active")
		}
		tags = append(tags, fmt.Sprintf("s%d", i))

		fmt.Fprintf(&sb, "    %s :%s, %d, %d\n", label, strings.Join(tags, ", "), start, end)
	}

	return sb.String()
}

func millis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}

func tokenLabel(t domain.Token) string {
	switch t.Kind {
	case domain.KindBlank:
		return "_"
	case domain.KindOpaque:
		return sanitizeLabel(fmt.Sprint(t.Unit))
	default:
		return sanitizeLabel(t.Text)
	}
}

// sanitizeLabel strips the characters that end a task label or start a comment.
func sanitizeLabel(s string) string {
	r := strings.NewReplacer(":", " ", ";", " ", "#", " ", "\n", " ")
	return r.Replace(s)
}
