package importer

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vmunix/strmsync/internal/library"
	"github.com/vmunix/strmsync/pkg/release"
)

// EpisodeIdentity is the canonical naming of one source file.
type EpisodeIdentity struct {
	Title        string // filesystem-safe series title
	Season       string // two digits, "01" when unknown
	Episode      string // at least two digits when numeric; empty for movies and specials
	StandardName string // "Title - S01E05", or Title when there is no episode
	OriginalName string
}

// Canonicalize derives the identity of filename. It never fails: names
// without a title ("Ep1.mkv") take the parent directory name, then the file
// stem, and the season defaults to 01.
func Canonicalize(filename string) EpisodeIdentity {
	base := filepath.Base(filename)
	info := release.Parse(base)

	title := library.SanitizeFilename(info.Title)
	if title == "" {
		title = parentTitle(filename)
	}
	if title == "" {
		title = library.SanitizeFilename(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if title == "" {
		title = "Unknown"
	}

	id := EpisodeIdentity{
		Title:        title,
		Season:       padSeason(info.Season()),
		Episode:      padEpisode(info.Episode()),
		OriginalName: base,
	}
	id.StandardName = id.Title
	if id.Episode != "" {
		id.StandardName = fmt.Sprintf("%s - S%sE%s", id.Title, id.Season, id.Episode)
	}
	return id
}

// SeasonNumber returns the season as an int.
func (id EpisodeIdentity) SeasonNumber() int {
	n, _ := strconv.Atoi(id.Season)
	return n
}

// EpisodeNumber returns the episode as an int, 0 when absent or not numeric.
func (id EpisodeIdentity) EpisodeNumber() int {
	n, err := strconv.ParseFloat(id.Episode, 64)
	if err != nil {
		return 0
	}
	return int(n)
}

// parentTitle returns the sanitized name of the directory holding filename,
// or "" for bare names and filesystem roots.
func parentTitle(filename string) string {
	dir := filepath.Dir(filename)
	if dir == "." || dir == filepath.Dir(dir) {
		return ""
	}
	return library.SanitizeFilename(filepath.Base(dir))
}

// padEpisode zero-pads integer episodes to two digits. Anything else, such
// as "13.5", is kept as written.
func padEpisode(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return s
	}
	return fmt.Sprintf("%02d", n)
}

func padSeason(s string) string {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return "01"
	}
	return fmt.Sprintf("%02d", n)
}
