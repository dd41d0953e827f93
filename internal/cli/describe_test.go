package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/reel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_Preset(t *testing.T) {
	var buf bytes.Buffer
	err := Describe(context.Background(), DescribeOptions{PresetsDir: presetsDir(t), Preset: "arcade"}, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Arcade")
	assert.Contains(t, out, "arcade")
	assert.Contains(t, out, "dummy_character_count")
	assert.Contains(t, out, "sequential")
}

func TestDescribe_Index(t *testing.T) {
	dir := presetsDir(t)
	writeFile(t, dir, "odometer.json", `{"title": "Odometer", "options": {"direction": "bottom-up"}}`)

	var buf bytes.Buffer
	require.NoError(t, Describe(context.Background(), DescribeOptions{PresetsDir: dir}, &buf))
	assert.Contains(t, buf.String(), "Presets")
	assert.Contains(t, buf.String(), "arcade")
	assert.Contains(t, buf.String(), "odometer")
}

func TestDescribe_Missing(t *testing.T) {
	var buf bytes.Buffer
	err := Describe(context.Background(), DescribeOptions{PresetsDir: presetsDir(t), Preset: "nope"}, &buf)
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
}

func TestOptionRows(t *testing.T) {
	duration := 1.5
	rows, err := optionRows(domain.Options{Duration: &duration, Direction: domain.DirectionBottomUp})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"direction", "bottom-up"}, {"duration", "1.5"}}, rows)
}
