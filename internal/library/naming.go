// Package library owns the on-disk layout of the streaming library:
// folder naming, series-level sidecars and migration of legacy folders.
package library

import (
	"regexp"
	"strings"

	"github.com/vmunix/strmsync/internal/metadata"
)

// Fixed names inside the library tree.
const (
	AnimeDir      = "Anime"
	SeriesNFOName = "tvshow.nfo"
	PosterName    = "poster.jpg"
	FolderName    = "folder.jpg"
)

// illegalChars are characters not allowed in filenames on common filesystems.
var illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00]`)

// SanitizeFilename replaces filesystem-illegal characters with underscores
// and trims surrounding whitespace. A name made only of dots is rewritten so
// it can never address a parent directory.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(illegalChars.ReplaceAllString(name, "_"))
	if name != "" && strings.Trim(name, ".") == "" {
		name = strings.Repeat("_", len(name))
	}
	return name
}

// SeasonDir returns the season folder name for a zero-padded season number.
func SeasonDir(season string) string {
	return "Season " + season
}

// SeriesName picks the folder name for a series: the preferred metadata
// title when one is available, else fallback.
func SeriesName(meta *metadata.Series, fallback string) string {
	if meta != nil {
		if name := SanitizeFilename(meta.Title()); name != "" {
			return name
		}
	}
	return SanitizeFilename(fallback)
}
