package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	assert.Contains(t, DefaultPath(), filepath.Join(".config", "strmsync", "config.toml"))
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	assert.Equal(t, filepath.Join("/custom/config", "strmsync", "config.toml"), DefaultPath())
}

// chdirTemp moves into a fresh temp dir and isolates discovery from the
// caller's environment.
func chdirTemp(t *testing.T) string {
	t.Helper()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, os.Chdir(origDir))
	})

	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	return tmp
}

func TestDiscover_Explicit(t *testing.T) {
	tmp := chdirTemp(t)
	explicit := filepath.Join(tmp, "custom.toml")
	require.NoError(t, os.WriteFile(explicit, nil, 0644))

	// Explicit wins over the env var.
	t.Setenv(EnvConfig, "/nonexistent/config.toml")

	path, err := Discover(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
}

func TestDiscover_ExplicitNotFound(t *testing.T) {
	chdirTemp(t)

	_, err := Discover("/nonexistent/config.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config")
}

func TestDiscover_EnvVar(t *testing.T) {
	tmp := chdirTemp(t)
	cfgPath := filepath.Join(tmp, "env.toml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0644))
	t.Setenv(EnvConfig, cfgPath)

	path, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_EnvVarNotFound(t *testing.T) {
	chdirTemp(t)
	t.Setenv(EnvConfig, "/nonexistent/config.toml")

	_, err := Discover("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvConfig)
}

func TestDiscover_CurrentDirBeforeLegacy(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.MkdirAll("config", 0755))
	require.NoError(t, os.WriteFile(LegacyPath, nil, 0644))
	require.NoError(t, os.WriteFile("config.toml", nil, 0644))

	path, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, "./config.toml", path)
}

func TestDiscover_Legacy(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.MkdirAll("config", 0755))
	require.NoError(t, os.WriteFile(LegacyPath, nil, 0644))

	path, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, LegacyPath, path)
}

func TestDiscover_XDG(t *testing.T) {
	tmp := chdirTemp(t)
	xdgPath := filepath.Join(tmp, "xdg", "strmsync", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(xdgPath), 0755))
	require.NoError(t, os.WriteFile(xdgPath, nil, 0644))

	path, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, xdgPath, path)
}

func TestDiscover_NotFound(t *testing.T) {
	if _, err := os.Stat("/etc/strmsync/config.toml"); err == nil {
		t.Skip("system config present")
	}
	chdirTemp(t)

	_, err := Discover("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config not found")
}
