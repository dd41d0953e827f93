package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/reel/pkg/domain"
)

// TextHandler redraws frames on a single terminal line.
type TextHandler struct {
	Writer   io.Writer
	Renderer FrameRenderer

	// Inline redraws in place with a carriage return. When false every frame
	// gets its own line, which suits pipes and logs.
	Inline bool

	width int
}

// NewTextHandler creates an inline handler that prints the frame text.
func NewTextHandler(w io.Writer) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{
		Writer: w,
		Inline: true,
	}
}

func (h *TextHandler) Frame(ctx context.Context, frame domain.Frame) error {
	text := h.render(frame)
	if !h.Inline {
		_, err := fmt.Fprintln(h.Writer, text)
		return err
	}

	// Pad with spaces so a shorter frame erases the previous one.
	pad := h.width - len(text)
	h.width = max(h.width, len(text))
	if pad < 0 {
		pad = 0
	}
	_, err := fmt.Fprintf(h.Writer, "\r%s%*s", text, pad, "")
	return err
}

func (h *TextHandler) Done(ctx context.Context, frame domain.Frame) error {
	if err := h.Frame(ctx, frame); err != nil {
		return err
	}
	h.width = 0
	if !h.Inline {
		return nil
	}
	_, err := fmt.Fprintln(h.Writer)
	return err
}

func (h *TextHandler) render(frame domain.Frame) string {
	if h.Renderer != nil {
		return h.Renderer(frame)
	}
	return frame.Text()
}
