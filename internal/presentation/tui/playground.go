package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/reel"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const playgroundHelp = "enter: set value  ↑/↓: ±1  ^R: replay  ^S: stop  tab: mode  ^D: direction  esc: quit"

var modes = []domain.Mode{domain.ModeSimultaneous, domain.ModeSequential, domain.ModeSequentialByResult}

// Playground is an interactive counter on a tcell screen.
type Playground struct {
	screen   tcell.Screen
	counter  *reel.Counter
	interval time.Duration

	input  []rune
	status string
}

// NewPlayground creates a playground for counter. The screen must already be initialized.
func NewPlayground(screen tcell.Screen, counter *reel.Counter, interval time.Duration) *Playground {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Playground{
		screen:   screen,
		counter:  counter,
		interval: interval,
		input:    []rune(counter.Value().String()),
	}
}

// Run polls input and redraws until the user quits or ctx is done.
func (p *Playground) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	p.Draw(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !p.HandleEvent(ctx, ev) {
				return nil
			}
			p.Draw(ctx)
		case <-ticker.C:
			p.Draw(ctx)
		}
	}
}

// HandleEvent applies one input event. It returns false when the user quits.
func (p *Playground) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		if _, resized := ev.(*tcell.EventResize); resized {
			p.screen.Sync()
		}
		return true
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		p.setValue(ctx, string(p.input))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case tcell.KeyUp:
		p.step(ctx, 1)
	case tcell.KeyDown:
		p.step(ctx, -1)
	case tcell.KeyCtrlR:
		p.report("replay", p.counter.StartAnimation(ctx, nil))
	case tcell.KeyCtrlS:
		p.counter.StopAnimation(ctx)
		p.status = "stopped"
	case tcell.KeyTab:
		p.reconfigure(ctx, "mode", nextMode)
	case tcell.KeyCtrlD:
		p.reconfigure(ctx, "direction", flipDirection)
	case tcell.KeyRune:
		p.input = append(p.input, key.Rune())
	}
	return true
}

func (p *Playground) setValue(ctx context.Context, text string) {
	var v any = text
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		v = n
	}
	p.report("set "+text, p.counter.SetValue(ctx, v))
}

func (p *Playground) step(ctx context.Context, delta int64) {
	n, err := strconv.ParseInt(p.counter.Value().String(), 10, 64)
	if err != nil {
		p.status = "value is not an integer"
		return
	}
	p.input = []rune(strconv.FormatInt(n+delta, 10))
	p.setValue(ctx, string(p.input))
}

func (p *Playground) reconfigure(ctx context.Context, what string, change func(*domain.Options)) {
	opts := p.counter.Options()
	change(&opts)
	p.report(what, p.counter.Configure(ctx, opts))
}

func (p *Playground) report(action string, err error) {
	if err != nil {
		p.status = err.Error()
		return
	}
	p.status = action
}

func nextMode(o *domain.Options) {
	current := o.Mode()
	next := modes[0]
	for i, m := range modes {
		if m == current {
			next = modes[(i+1)%len(modes)]
		}
	}
	o.SequentialAnimationMode = next == domain.ModeSequential
	o.SequentialSlotResultMode = next == domain.ModeSequentialByResult
}

func flipDirection(o *domain.Options) {
	if o.ScrollDirection() == domain.DirectionTopDown {
		o.Direction = domain.DirectionBottomUp
		return
	}
	o.Direction = domain.DirectionTopDown
}

// Draw renders the current frame, the input line and the status bar.
func (p *Playground) Draw(ctx context.Context) {
	frame := p.counter.Tick(ctx)
	opts := p.counter.Options()

	p.screen.Clear()
	drawString(p.screen, 2, 1, "reel playground", tcell.StyleDefault.Bold(true))

	x := 4
	for _, t := range frame.Tokens {
		text := TokenText(t)
		drawString(p.screen, x, 3, text, tokenStyle(t.Kind, frame.State))
		x += runewidth.StringWidth(text)
	}

	drawString(p.screen, 2, 5, "value: "+string(p.input)+"_", tcell.StyleDefault)
	drawString(p.screen, 2, 6, fmt.Sprintf("%s · %s · %s", frame.State, opts.Mode(), opts.ScrollDirection()), tcell.StyleDefault.Dim(true))
	if p.status != "" {
		drawString(p.screen, 2, 7, p.status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	drawString(p.screen, 2, 9, playgroundHelp, tcell.StyleDefault.Dim(true))
	p.screen.Show()
}

func tokenStyle(kind domain.TokenKind, state domain.ControllerState) tcell.Style {
	style := tcell.StyleDefault
	switch kind {
	case domain.KindDigit:
		style = style.Foreground(tcell.GetColor(DefaultPalette.Digit))
	case domain.KindLetter:
		style = style.Foreground(tcell.GetColor(DefaultPalette.Letter))
	case domain.KindSeparator:
		style = style.Foreground(tcell.GetColor(DefaultPalette.Separator))
	case domain.KindOpaque:
		style = style.Foreground(tcell.GetColor(DefaultPalette.Opaque))
	}
	return style.Bold(state == domain.StateRunning)
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// ScreenText returns the visible text of row y of a simulation screen, right-trimmed.
func ScreenText(s tcell.SimulationScreen, y int) string {
	cells, width, height := s.GetContents()
	if y < 0 || y >= height {
		return ""
	}
	var sb strings.Builder
	for _, c := range cells[y*width : (y+1)*width] {
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteString(string(c.Runes))
	}
	return strings.TrimRight(sb.String(), " ")
}
