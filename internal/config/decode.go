package config

import (
	"fmt"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DecodeOptions decodes a loosely typed map (YAML, JSON, frontmatter, tool arguments)
// into counter options. Unknown keys are rejected.
func DecodeOptions(raw map[string]any) (domain.Options, error) {
	var opts domain.Options
	if err := DecodeOptionsInto(raw, &opts); err != nil {
		return domain.Options{}, err
	}
	return opts, nil
}

// DecodeOptionsInto decodes raw on top of opts. Keys absent from raw keep their current value,
// which lets a counter definition refine a preset.
func DecodeOptionsInto(raw map[string]any, opts *domain.Options) error {
	// Untyped fields are replaced, not decoded into the previous value's type.
	if _, ok := raw["value"]; ok {
		opts.Value = nil
	}
	if _, ok := raw["start_value"]; ok {
		opts.StartValue = nil
	}
	if _, ok := raw["dummy_characters"]; ok {
		opts.DummyCharacters = nil
	}
	if err := decode(raw, opts); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	return nil
}

// DecodeOverrides decodes per-call animation overrides. An empty map yields nil.
func DecodeOverrides(raw map[string]any) (*domain.Overrides, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ov domain.Overrides
	if err := decode(raw, &ov); err != nil {
		return nil, fmt.Errorf("decode overrides: %w", err)
	}
	return &ov, nil
}

func decode(raw map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
