// Package tui renders counters in a terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Palette holds the hex colours used per token kind.
type Palette struct {
	Digit     string
	Letter    string
	Separator string
	Opaque    string
}

// DefaultPalette matches the banner colours.
var DefaultPalette = Palette{
	Digit:     "#a78bfa",
	Letter:    "#e879f9",
	Separator: "#6b7280",
	Opaque:    "#fb7185",
}

// ReelRenderer turns frames into styled terminal text.
type ReelRenderer struct {
	Profile termenv.Profile
	Palette Palette
	// Monospace pads every slot to the widest token so the counter keeps its width while spinning.
	Monospace bool
}

// NewReelRenderer creates a renderer for the given colour profile.
func NewReelRenderer(p termenv.Profile) *ReelRenderer {
	return &ReelRenderer{Profile: p, Palette: DefaultPalette}
}

// Render styles the frame's tokens. Running frames are bold.
func (r *ReelRenderer) Render(f domain.Frame) string {
	cell := 0
	if r.Monospace {
		for _, t := range f.Tokens {
			cell = max(cell, runewidth.StringWidth(TokenText(t)))
		}
	}

	var sb strings.Builder
	for _, t := range f.Tokens {
		text := TokenText(t)
		if pad := cell - runewidth.StringWidth(text); pad > 0 {
			text = strings.Repeat(" ", pad) + text
		}
		if text == "" {
			continue
		}

		style := r.Profile.String(text)
		if c := r.color(t.Kind); c != "" {
			style = style.Foreground(r.Profile.Color(c))
		}
		if f.State == domain.StateRunning {
			style = style.Bold()
		}
		if t.Kind == domain.KindSeparator {
			style = style.Faint()
		}
		sb.WriteString(style.String())
	}
	return sb.String()
}

func (r *ReelRenderer) color(kind domain.TokenKind) string {
	switch kind {
	case domain.KindDigit:
		return r.Palette.Digit
	case domain.KindLetter:
		return r.Palette.Letter
	case domain.KindSeparator:
		return r.Palette.Separator
	case domain.KindOpaque:
		return r.Palette.Opaque
	}
	return ""
}

// TokenText is the printable form of a token. Blanks print as nothing.
func TokenText(t domain.Token) string {
	switch t.Kind {
	case domain.KindBlank:
		return ""
	case domain.KindOpaque:
		return fmt.Sprint(t.Unit)
	default:
		return t.Text
	}
}
