package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/reel/internal/logging"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to keep Stdout for frames).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// ParseValue reads a command-line value.
// Integers and decimals stay numeric, a JSON array becomes a sequence of units,
// anything else is kept as text.
func ParseValue(arg string) any {
	trimmed := strings.TrimSpace(arg)
	if strings.HasPrefix(trimmed, "[") {
		var units []any
		if err := json.Unmarshal([]byte(trimmed), &units); err == nil {
			return units
		}
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !strings.ContainsAny(trimmed, "eEnN") {
		return f
	}
	return arg
}

// parseAssignments turns key=value flags into a raw option map.
func parseAssignments(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	raw := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid option %q: expected key=value", pair)
		}
		key = strings.TrimSpace(key)
		switch key {
		case "value", "start_value":
			raw[key] = ParseValue(value)
		default:
			raw[key] = strings.TrimSpace(value)
		}
	}
	return raw, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or fallback when it is not a terminal.
func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// colorProfile picks the colour profile for w. Pipes get plain text.
func colorProfile(w io.Writer) termenv.Profile {
	if !isTerminal(w) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
