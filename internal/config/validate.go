package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their config key, not the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	errs := c.validateTags()

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	for _, ext := range c.Local.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Sprintf("local.extensions: %q must start with \".\"", ext))
		}
	}

	if err := checkBWLimit(c.Rclone.BWLimit); err != nil {
		errs = append(errs, fmt.Sprintf("rclone.bwlimit: %v", err))
	}
	if c.Rclone.Transfers < 0 {
		errs = append(errs, fmt.Sprintf("rclone.transfers: must not be negative, got %d", c.Rclone.Transfers))
	}

	if c.AniList.MinInterval < 0 {
		errs = append(errs, "anilist.min_interval: must be positive")
	}
	if c.AniList.Timeout < 0 {
		errs = append(errs, "anilist.timeout: must be positive")
	}
	if c.AniList.CacheTTL < 0 {
		errs = append(errs, "anilist.cache_ttl: must be positive")
	}
	if c.Thumbnail.Offset < 0 {
		errs = append(errs, "thumbnail.offset: must be positive")
	}

	return errs
}

func (c *Config) validateTags() []string {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Config.section.key".
		_, field, _ := strings.Cut(fe.Namespace(), ".")
		switch fe.Tag() {
		case "required":
			out = append(out, field+": required")
		case "url":
			out = append(out, fmt.Sprintf("%s: must be a URL, got %q", field, fe.Value()))
		default:
			out = append(out, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return out
}

// checkBWLimit accepts rclone's bandwidth syntax: empty, "off", a size,
// an "up:down" pair of sizes, or a timetable (left to rclone to judge).
func checkBWLimit(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "off") {
		return nil
	}
	if strings.ContainsAny(s, ", ") {
		return nil
	}
	for _, part := range strings.Split(s, ":") {
		if strings.EqualFold(part, "off") {
			continue
		}
		if _, err := humanize.ParseBytes(part); err != nil {
			return fmt.Errorf("invalid size %q", part)
		}
	}
	return nil
}
