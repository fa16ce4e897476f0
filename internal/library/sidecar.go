package library

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/vmunix/strmsync/internal/metadata"
	"github.com/vmunix/strmsync/internal/nfo"
)

// ArtworkFetcher downloads an image to a local path.
type ArtworkFetcher interface {
	Download(ctx context.Context, url, dest string) error
}

// Sidecars writes series-level files next to a series folder.
// Existing files are never replaced.
type Sidecars struct {
	artwork ArtworkFetcher
	log     *slog.Logger
}

// NewSidecars creates a sidecar writer.
func NewSidecars(artwork ArtworkFetcher, log *slog.Logger) *Sidecars {
	return &Sidecars{
		artwork: artwork,
		log:     log.With("component", "sidecars"),
	}
}

// EnsureSeries creates tvshow.nfo, poster.jpg and folder.jpg in seriesDir
// when they are missing. Failures are logged and never returned: sidecars
// are best effort.
func (s *Sidecars) EnsureSeries(ctx context.Context, seriesDir string, meta *metadata.Series) {
	if meta == nil {
		return
	}
	log := s.log.With("series", meta.Title(), "dir", seriesDir)

	nfoPath := filepath.Join(seriesDir, SeriesNFOName)
	if !exists(nfoPath) {
		data, err := nfo.RenderSeries(meta)
		if err == nil {
			err = nfo.WriteFile(nfoPath, data)
		}
		if err != nil {
			log.Warn("write series nfo failed", "error", err)
		} else {
			log.Info("wrote series nfo", "path", nfoPath)
		}
	}

	if meta.CoverImageURL == "" {
		return
	}

	poster := filepath.Join(seriesDir, PosterName)
	if !exists(poster) {
		if err := s.artwork.Download(ctx, meta.CoverImageURL, poster); err != nil {
			log.Warn("poster download failed", "url", meta.CoverImageURL, "error", err)
			return
		}
		log.Info("saved poster", "path", poster)
	}

	folder := filepath.Join(seriesDir, FolderName)
	if !exists(folder) {
		if _, err := CopyFile(poster, folder); err != nil {
			log.Warn("write folder image failed", "error", err)
		}
	}
}
