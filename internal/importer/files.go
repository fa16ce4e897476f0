package importer

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the video extensions processed when none are configured.
var DefaultExtensions = []string{".mp4", ".mkv", ".avi", ".mov"}

// extensionSet normalizes exts to a lower-case lookup set.
func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}

// findVideos walks root and returns every file whose extension is in exts.
// Unreadable entries are logged and skipped.
func findVideos(root string, exts map[string]bool, log *slog.Logger) []string {
	var videos []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if exts[strings.ToLower(filepath.Ext(path))] {
			videos = append(videos, path)
		}
		return nil
	})
	return videos
}
