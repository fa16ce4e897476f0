// Package config handles TOML (or legacy YAML) configuration loading with
// environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Log       LogConfig       `toml:"log" yaml:"log"`
	Database  DatabaseConfig  `toml:"database" yaml:"database"`
	Local     LocalConfig     `toml:"local" yaml:"local"`
	Rclone    RcloneConfig    `toml:"rclone" yaml:"rclone"`
	Seafile   SeafileConfig   `toml:"seafile" yaml:"seafile"`
	AniList   AniListConfig   `toml:"anilist" yaml:"anilist"`
	Thumbnail ThumbnailConfig `toml:"thumbnail" yaml:"thumbnail"`
}

type LogConfig struct {
	Level      string `toml:"level" yaml:"level"`
	File       string `toml:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days" validate:"gte=0"`
	Compress   bool   `toml:"compress" yaml:"compress"`
}

type DatabaseConfig struct {
	Path string `toml:"path" yaml:"path"`
}

type LocalConfig struct {
	RootPath          string   `toml:"root_path" yaml:"root_path" validate:"required"`
	LibraryPath       string   `toml:"library_path" yaml:"library_path" validate:"required"`
	Extensions        []string `toml:"extensions" yaml:"extensions"`
	DeleteAfterUpload bool     `toml:"delete_after_upload" yaml:"delete_after_upload"`
	// MigrateLegacy is nil when unset so the default can be true.
	MigrateLegacy *bool `toml:"migrate_legacy" yaml:"migrate_legacy"`
}

// ShouldMigrate reports whether legacy folders are migrated before a sync.
func (l LocalConfig) ShouldMigrate() bool {
	return l.MigrateLegacy == nil || *l.MigrateLegacy
}

type RcloneConfig struct {
	Binary       string `toml:"binary" yaml:"binary"`
	RemoteName   string `toml:"remote_name" yaml:"remote_name" validate:"required"`
	RemoteRoot   string `toml:"remote_root" yaml:"remote_root" validate:"required"`
	UploadPrefix string `toml:"upload_prefix" yaml:"upload_prefix"`
	BWLimit      string `toml:"bwlimit" yaml:"bwlimit"`
	Transfers    int    `toml:"transfers" yaml:"transfers"`
}

type SeafileConfig struct {
	Host     string `toml:"host" yaml:"host" validate:"required,url"`
	APIToken string `toml:"api_token" yaml:"api_token" validate:"required"`
	RepoID   string `toml:"repo_id" yaml:"repo_id" validate:"required"`
}

type AniListConfig struct {
	URL         string        `toml:"url" yaml:"url" validate:"omitempty,url"`
	MinInterval time.Duration `toml:"min_interval" yaml:"min_interval"`
	Timeout     time.Duration `toml:"timeout" yaml:"timeout"`
	// CacheTTL keeps successful searches in the database. Zero disables.
	CacheTTL time.Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

type ThumbnailConfig struct {
	Enabled *bool         `toml:"enabled" yaml:"enabled"`
	Binary  string        `toml:"binary" yaml:"binary"`
	Offset  time.Duration `toml:"offset" yaml:"offset"`
}

// IsEnabled reports whether episode thumbnails are extracted. Defaults to true.
func (t ThumbnailConfig) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// Default values applied after decoding.
var (
	DefaultExtensions = []string{".mp4", ".mkv", ".avi", ".mov"}
)

const (
	DefaultDatabasePath       = "./data/strmsync.db"
	DefaultLogFile            = "./logs/strmsync.log"
	DefaultLogMaxSizeMB       = 5
	DefaultLogMaxBackups      = 3
	DefaultRcloneBinary       = "rclone"
	DefaultRcloneTransfers    = 2
	DefaultFFmpegBinary       = "ffmpeg"
	DefaultThumbnailOffset    = 10 * time.Second
	DefaultAniListURL         = "https://graphql.anilist.co"
	DefaultAniListMinInterval = 500 * time.Millisecond
	DefaultAniListTimeout     = 10 * time.Second
)

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// LoadDotEnv loads ./.env into the process environment if present.
// Variables already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads, substitutes, decodes, defaults and validates the config at path.
// Substitution and validation problems are returned together as *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	cfg, defined, err := parse(path, content)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults(defined)

	cerr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and decodes the config at path, applying
// defaults but skipping validation. Unresolved variables are left in place.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	content, _ := substituteEnvVars(string(data))
	cfg, defined, err := parse(path, content)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults(defined)
	return cfg, nil
}

// keyFunc reports whether a dotted key was present in the source file.
type keyFunc func(keys ...string) bool

func parse(path, content string) (*Config, keyFunc, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, nil, fmt.Errorf("parse yaml: %w", err)
		}
		var raw map[string]any
		_ = yaml.Unmarshal([]byte(content), &raw)
		return &cfg, yamlKeys(raw), nil
	default:
		md, err := toml.Decode(content, &cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("parse toml: %w", err)
		}
		return &cfg, md.IsDefined, nil
	}
}

func yamlKeys(raw map[string]any) keyFunc {
	return func(keys ...string) bool {
		var node any = raw
		for _, k := range keys {
			m, ok := node.(map[string]any)
			if !ok {
				return false
			}
			if node, ok = m[k]; !ok {
				return false
			}
		}
		return true
	}
}

// applyDefaults fills unset fields. defined distinguishes an explicitly
// empty value from a missing one where that matters.
func (c *Config) applyDefaults(defined keyFunc) {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if !defined("log", "file") {
		c.Log.File = DefaultLogFile
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = DefaultLogMaxBackups
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if len(c.Local.Extensions) == 0 {
		c.Local.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if c.Rclone.Binary == "" {
		c.Rclone.Binary = DefaultRcloneBinary
	}
	if c.Rclone.Transfers == 0 {
		c.Rclone.Transfers = DefaultRcloneTransfers
	}
	if c.AniList.URL == "" {
		c.AniList.URL = DefaultAniListURL
	}
	if c.AniList.MinInterval == 0 {
		c.AniList.MinInterval = DefaultAniListMinInterval
	}
	if c.AniList.Timeout == 0 {
		c.AniList.Timeout = DefaultAniListTimeout
	}
	if c.Thumbnail.Binary == "" {
		c.Thumbnail.Binary = DefaultFFmpegBinary
	}
	if c.Thumbnail.Offset == 0 {
		c.Thumbnail.Offset = DefaultThumbnailOffset
	}
}

// substituteEnvVars expands environment references in s. Lines starting
// with # are left alone. Empty variables count as unset for both :- and :?.
// Unresolved references stay in the output and are reported in missing.
func substituteEnvVars(s string) (string, []string) {
	var missing []string
	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		var m []string
		lines[i], m = expandLine(line)
		missing = append(missing, m...)
	}
	return strings.Join(lines, ""), missing
}

func expandLine(s string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]

		if val := os.Getenv(name); val != "" {
			return val
		}
		switch op {
		case ":-":
			return arg
		case ":?":
			missing = append(missing, name+": "+arg)
		default:
			if _, ok := os.LookupEnv(name); ok {
				return ""
			}
			missing = append(missing, name)
		}
		return match
	})
	return out, missing
}
