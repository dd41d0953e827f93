package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/reel/pkg/domain"
)

// JSONHandler implements the FrameHandler interface for structured JSON-Lines output.
type JSONHandler struct {
	Encoder *json.Encoder

	// SkipIntermediate emits only the final frame of each run.
	SkipIntermediate bool
}

// jsonFrame is the wire form of a frame: the text is included for convenience.
type jsonFrame struct {
	domain.Frame
	Text string `json:"text"`
}

// NewJSONHandler creates a handler writing one JSON object per line.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

func (h *JSONHandler) Frame(ctx context.Context, frame domain.Frame) error {
	if h.SkipIntermediate {
		return nil
	}
	return h.Encoder.Encode(jsonFrame{Frame: frame, Text: frame.Text()})
}

func (h *JSONHandler) Done(ctx context.Context, frame domain.Frame) error {
	return h.Encoder.Encode(jsonFrame{Frame: frame, Text: frame.Text()})
}
