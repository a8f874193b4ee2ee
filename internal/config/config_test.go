package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	content := `
source: host/src
primary_branch: main
prefixes:
  - /opt/boost
  - /usr
boost:
  components: [thread]
hardware:
  major: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "host/src", f.Source)
	assert.Equal(t, "main", f.PrimaryBranch)
	assert.Equal(t, []string{"/opt/boost", "/usr"}, f.Prefixes)
	assert.Equal(t, []string{"thread"}, f.Boost.Components)
	assert.Equal(t, 3, f.Hardware.Major)

	// Omitted fields keep their defaults.
	assert.Equal(t, "docs", f.Docs)
	assert.Equal(t, "2.7", f.Python.Version)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("source: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
