package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalTOML = `
[local]
root_path = "/data/downloads"
library_path = "/data/library"

[rclone]
remote_name = "seafile"
remote_root = "/Media/Anime"

[seafile]
host = "https://seafile.example.com"
api_token = "secret"
repo_id = "abc-123"
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.toml", minimalTOML))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "./logs/strmsync.log", cfg.Log.File)
	assert.Equal(t, 5, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, "./data/strmsync.db", cfg.Database.Path)
	assert.Equal(t, []string{".mp4", ".mkv", ".avi", ".mov"}, cfg.Local.Extensions)
	assert.True(t, cfg.Local.ShouldMigrate())
	assert.False(t, cfg.Local.DeleteAfterUpload)
	assert.Equal(t, "rclone", cfg.Rclone.Binary)
	assert.Equal(t, 2, cfg.Rclone.Transfers)
	assert.Equal(t, "https://graphql.anilist.co", cfg.AniList.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.AniList.MinInterval)
	assert.Equal(t, 10*time.Second, cfg.AniList.Timeout)
	assert.Zero(t, cfg.AniList.CacheTTL)
	assert.True(t, cfg.Thumbnail.IsEnabled())
	assert.Equal(t, "ffmpeg", cfg.Thumbnail.Binary)
	assert.Equal(t, 10*time.Second, cfg.Thumbnail.Offset)
}

func TestLoad_ExplicitValues(t *testing.T) {
	content := minimalTOML + `
[log]
level = "debug"
file = ""

[thumbnail]
enabled = false
offset = "3s"

[anilist]
min_interval = "1s"
cache_ttl = "12h"
`
	content = strings.Replace(content, `[local]`, "[local]\nmigrate_legacy = false\ndelete_after_upload = true", 1)

	cfg, err := Load(writeConfig(t, "config.toml", content))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.False(t, cfg.Local.ShouldMigrate())
	assert.True(t, cfg.Local.DeleteAfterUpload)
	assert.False(t, cfg.Thumbnail.IsEnabled())
	assert.Equal(t, 3*time.Second, cfg.Thumbnail.Offset)
	assert.Equal(t, time.Second, cfg.AniList.MinInterval)
	assert.Equal(t, 12*time.Hour, cfg.AniList.CacheTTL)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("STRMSYNC_TEST_TOKEN", "from-env")
	content := strings.Replace(minimalTOML, `api_token = "secret"`, `api_token = "${STRMSYNC_TEST_TOKEN}"`, 1)

	cfg, err := Load(writeConfig(t, "config.toml", content))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Seafile.APIToken)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	content := strings.Replace(minimalTOML, `api_token = "secret"`, `api_token = "${STRMSYNC_TEST_NO_SUCH_TOKEN}"`, 1)
	path := writeConfig(t, "config.toml", content)

	_, err := Load(path)
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, path, cerr.Path)
	assert.Equal(t, []string{"STRMSYNC_TEST_NO_SUCH_TOKEN"}, cerr.Missing)
}

func TestLoad_LegacyYAML(t *testing.T) {
	content := `
local:
  root_path: /data/downloads
  library_path: /data/library
  delete_after_upload: true
  extensions: [".mkv"]
rclone:
  remote_name: seafile
  remote_root: /Media/Anime
  bwlimit: 10M
seafile:
  host: https://seafile.example.com
  api_token: secret
  repo_id: abc-123
thumbnail:
  offset: 5s
log:
  file: ""
`
	cfg, err := Load(writeConfig(t, "config.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, "/data/downloads", cfg.Local.RootPath)
	assert.True(t, cfg.Local.DeleteAfterUpload)
	assert.Equal(t, []string{".mkv"}, cfg.Local.Extensions)
	assert.Equal(t, "10M", cfg.Rclone.BWLimit)
	assert.Equal(t, 5*time.Second, cfg.Thumbnail.Offset)
	assert.Equal(t, 2, cfg.Rclone.Transfers)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_InvalidTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", "[local\nroot_path ="))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse toml")

	var cerr *ConfigError
	assert.False(t, errors.As(err, &cerr))
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadWithoutValidation(t *testing.T) {
	cfg, err := LoadWithoutValidation(writeConfig(t, "config.toml", "[log]\nlevel = \"loud\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "loud", cfg.Log.Level)
	assert.Equal(t, "./data/strmsync.db", cfg.Database.Path)
}

func TestLoadDotEnv(t *testing.T) {
	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))

	// No .env is fine.
	require.NoError(t, LoadDotEnv())

	t.Setenv("STRMSYNC_DOTENV_KEPT", "real")
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"),
		[]byte("STRMSYNC_DOTENV_KEPT=file\nSTRMSYNC_DOTENV_NEW=file\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("STRMSYNC_DOTENV_NEW") })

	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "real", os.Getenv("STRMSYNC_DOTENV_KEPT"))
	assert.Equal(t, "file", os.Getenv("STRMSYNC_DOTENV_NEW"))
}
