package importer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/strmsync/internal/library"
)

// subtitleExts are copied next to the pointer file.
var subtitleExts = map[string]bool{
	".ass": true,
	".srt": true,
	".sub": true,
	".vtt": true,
}

// findSubtitles returns the files beside source that share its stem and
// carry a subtitle extension.
func findSubtitles(source string) ([]string, error) {
	dir := filepath.Dir(source)
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var subs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !subtitleExts[strings.ToLower(ext)] {
			continue
		}
		if strings.TrimSuffix(name, ext) == stem {
			subs = append(subs, filepath.Join(dir, name))
		}
	}
	return subs, nil
}

// copySubtitles copies each sibling subtitle of source into destDir as
// standardName plus the subtitle's extension. Returns the number copied.
func (p *Publisher) copySubtitles(source, destDir, standardName string) int {
	subs, err := findSubtitles(source)
	if err != nil {
		p.log.Warn("scan for subtitles failed", "path", source, "error", err)
		return 0
	}

	copied := 0
	for _, sub := range subs {
		dst := filepath.Join(destDir, standardName+filepath.Ext(sub))
		if _, err := library.CopyFile(sub, dst); err != nil {
			p.log.Warn("copy subtitle failed", "path", sub, "error", err)
			continue
		}
		p.log.Info("copied subtitle", "path", sub, "dest", dst)
		copied++
	}
	return copied
}
