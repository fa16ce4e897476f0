package config

import (
	"fmt"
	"strings"
)

// ConfigError aggregates everything wrong with one config file.
type ConfigError struct {
	Path    string   // config file path
	Missing []string // unresolved environment variables
	Errors  []string // validation failures
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "config %s:", e.Path)
	} else {
		b.WriteString("config:")
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "\n  missing environment variables: %s", strings.Join(e.Missing, ", "))
	}
	for _, msg := range e.Errors {
		fmt.Fprintf(&b, "\n  - %s", msg)
	}
	return b.String()
}

// HasErrors reports whether anything was recorded.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
