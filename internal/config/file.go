package config

import (
	"fmt"
	"os"

	"github.com/aretw0/reel/pkg/domain"
	"gopkg.in/yaml.v3"
)

// CounterSpec is one counter declared in a counters file.
type CounterSpec struct {
	ID string
	// Preset names a preset whose options the counter starts from.
	Preset  string
	Options domain.Options
	// Raw keeps the option keys as written, for applying on top of a preset.
	Raw map[string]any
}

// Resolve returns the counter's options applied on top of the preset's.
func (c CounterSpec) Resolve(preset *domain.Preset) (domain.Options, error) {
	if preset == nil {
		return c.Options, nil
	}
	opts := preset.Options
	if err := DecodeOptionsInto(c.Raw, &opts); err != nil {
		return domain.Options{}, fmt.Errorf("counter %q: %w", c.ID, err)
	}
	return opts, nil
}

// LoadCounters reads a YAML counters file.
func LoadCounters(path string) ([]CounterSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read counters file: %w", err)
	}
	return ParseCounters(data)
}

// ParseCounters parses either a single counter mapping or a document with a
// top-level "counters" list:
//
//	counters:
//	  - id: visitors
//	    value: 1024
//	    sequential_animation_mode: true
//
// A single mapping without an id gets the ID "default".
func ParseCounters(data []byte) ([]CounterSpec, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse counters file: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	list, ok := doc["counters"]
	if !ok {
		spec, err := ParseCounter(doc, "default")
		if err != nil {
			return nil, err
		}
		return []CounterSpec{spec}, nil
	}

	items, ok := list.([]any)
	if !ok {
		return nil, fmt.Errorf("parse counters file: counters must be a list, got %T", list)
	}

	seen := make(map[string]bool, len(items))
	specs := make([]CounterSpec, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parse counters file: counters[%d] must be a mapping, got %T", i, item)
		}
		spec, err := ParseCounter(m, "")
		if err != nil {
			return nil, fmt.Errorf("counters[%d]: %w", i, err)
		}
		if spec.ID == "" {
			return nil, fmt.Errorf("counters[%d]: missing id", i)
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("counters[%d]: duplicate id %q", i, spec.ID)
		}
		seen[spec.ID] = true
		specs = append(specs, spec)
	}
	return specs, nil
}

// ParseCounter splits a counter mapping into its id, preset and option keys.
// defaultID is used when m has no id.
func ParseCounter(m map[string]any, defaultID string) (CounterSpec, error) {
	spec := CounterSpec{ID: defaultID, Raw: make(map[string]any, len(m))}
	for k, v := range m {
		switch k {
		case "id":
			spec.ID = fmt.Sprint(v)
		case "preset":
			spec.Preset = fmt.Sprint(v)
		default:
			spec.Raw[k] = v
		}
	}

	opts, err := DecodeOptions(spec.Raw)
	if err != nil {
		return CounterSpec{}, err
	}
	spec.Options = opts
	return spec, nil
}
