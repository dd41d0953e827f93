package ports

import (
	"context"

	"github.com/aretw0/reel/pkg/domain"
)

// PresetSource provides named counter presets.
type PresetSource interface {
	// GetPreset returns the preset with the given ID.
	// Returns domain.ErrPresetNotFound if it does not exist.
	GetPreset(ctx context.Context, id string) (*domain.Preset, error)

	// ListPresets returns all preset IDs, sorted.
	ListPresets(ctx context.Context) ([]string, error)
}

// Watchable is implemented by preset sources that can report changes.
type Watchable interface {
	// Watch returns a channel that receives the ID of every changed preset document.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
