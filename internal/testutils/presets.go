package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// NewPresetRepo initializes a loam repository in a temp dir and writes the given
// preset documents (file name to content) into it.
func NewPresetRepo(t *testing.T, presets map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "init presets repo")

	for name, content := range presets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644), "write preset %s", name)
	}
	return dir, repo
}
