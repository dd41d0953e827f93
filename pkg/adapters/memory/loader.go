package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/reel/pkg/domain"
)

// Loader implements ports.PresetSource using an in-memory map.
type Loader struct {
	presets map[string]domain.Preset
}

// NewLoader creates a loader over the given presets, keyed by their IDs.
func NewLoader(presets ...domain.Preset) (*Loader, error) {
	data := make(map[string]domain.Preset, len(presets))
	for _, p := range presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset missing ID")
		}
		if _, dup := data[p.ID]; dup {
			return nil, fmt.Errorf("duplicate preset ID: %s", p.ID)
		}
		data[p.ID] = p
	}
	return &Loader{presets: data}, nil
}

// GetPreset returns a copy of the preset.
func (l *Loader) GetPreset(ctx context.Context, id string) (*domain.Preset, error) {
	p, ok := l.presets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, id)
	}
	p.Tags = append([]string(nil), p.Tags...)
	return &p, nil
}

// ListPresets returns all preset IDs.
func (l *Loader) ListPresets(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.presets))
	for k := range l.presets {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
