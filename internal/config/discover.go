package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "STRMSYNC_CONFIG"

// LegacyPath is where the previous tool kept its YAML config.
const LegacyPath = "./config/config.yaml"

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "strmsync", "config.toml")
}

// SearchPaths lists the locations Discover tries after the flag and env var.
func SearchPaths() []string {
	return []string{
		"./config.toml",
		LegacyPath,
		DefaultPath(),
		"/etc/strmsync/config.toml",
	}
}

// Discover finds the config file. An explicit path (from --config) wins,
// then $STRMSYNC_CONFIG, then the first existing entry of SearchPaths.
func Discover(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("--config %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, envPath, err)
		}
		return envPath, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("config not found, checked: %s", strings.Join(paths, ", "))
}
