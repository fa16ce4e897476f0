package metadata

//go:generate mockgen -source=resolver.go -destination=mocks/searcher.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/vmunix/strmsync/pkg/anilist"
	"github.com/vmunix/strmsync/pkg/release"
)

// Searcher is the provider lookup behind a Resolver.
type Searcher interface {
	SearchAnime(ctx context.Context, query string) (*anilist.Media, error)
}

// Resolver maps a series title to provider metadata.
//
// Each Resolve call makes at most one provider round trip. "No match" and
// transport failures are both reported to the caller as absent; only the
// log tells them apart.
type Resolver struct {
	searcher Searcher
	log      *slog.Logger
}

// NewResolver creates a resolver over searcher.
func NewResolver(searcher Searcher, log *slog.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		log:      log.With("component", "metadata"),
	}
}

// Resolve looks up title. The bool is false when no metadata is available.
func (r *Resolver) Resolve(ctx context.Context, title string) (*Series, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, false
	}

	media, err := r.searcher.SearchAnime(ctx, title)
	switch {
	case errors.Is(err, anilist.ErrNotFound):
		r.log.Info("no metadata match", "query", title)
		return nil, false
	case err != nil:
		r.log.Warn("metadata lookup failed", "query", title, "error", err)
		return nil, false
	case media == nil:
		return nil, false
	}

	s := FromMedia(media)
	s.Query = title
	s.Match = release.MatchTitle(title, s.Titles())

	if s.Match.Confidence < release.ConfidenceMedium {
		r.log.Warn("low-confidence metadata match",
			"query", title, "title", s.Title(), "provider_id", s.ProviderID,
			"score", s.Match.Score, "confidence", s.Match.Confidence.String())
	} else {
		r.log.Debug("metadata resolved",
			"query", title, "title", s.Title(), "provider_id", s.ProviderID,
			"confidence", s.Match.Confidence.String())
	}

	return s, true
}
