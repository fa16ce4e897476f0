package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/vmunix/strmsync/internal/library"
	"github.com/vmunix/strmsync/internal/mapping"
	"github.com/vmunix/strmsync/internal/metadata"
	"github.com/vmunix/strmsync/internal/nfo"
	"github.com/vmunix/strmsync/internal/tools"
)

// Step identifies where publishing stopped.
type Step string

const (
	StepNone      Step = ""
	StepDirectory Step = "directory"
	StepUpload    Step = "upload"
	StepLink      Step = "link"
	StepStrm      Step = "strm"
	StepMapping   Step = "mapping"
)

// Outcome is the result of publishing one file.
type Outcome struct {
	Source    string
	StrmPath  string // set once the pointer file is written
	ShareURL  string
	Mapped    bool
	Subtitles int
	Deleted   bool
	Step      Step  // failed step, StepNone on success
	Err       error // wraps one of the package failure classes
}

// OK reports whether the file was fully published and recorded.
func (o *Outcome) OK() bool {
	return o.Err == nil
}

func (o *Outcome) fail(step Step, err error) *Outcome {
	o.Step = step
	o.Err = err
	return o
}

// PublisherOptions configures optional publishing steps.
type PublisherOptions struct {
	DeleteAfterUpload bool
	Thumbnails        bool
	ThumbnailOffset   time.Duration
}

// Publisher uploads a source file and writes its library artifacts.
type Publisher struct {
	uploader    Uploader
	links       LinkProvider
	thumbnailer Thumbnailer // nil disables thumbnails
	sidecars    *library.Sidecars
	mappings    MappingWriter
	opts        PublisherOptions
	log         *slog.Logger
}

// NewPublisher creates a publisher.
func NewPublisher(uploader Uploader, links LinkProvider, thumbnailer Thumbnailer, sidecars *library.Sidecars,
	mappings MappingWriter, opts PublisherOptions, log *slog.Logger) *Publisher {
	if opts.ThumbnailOffset <= 0 {
		opts.ThumbnailOffset = 10 * time.Second
	}
	return &Publisher{
		uploader:    uploader,
		links:       links,
		thumbnailer: thumbnailer,
		sidecars:    sidecars,
		mappings:    mappings,
		opts:        opts,
		log:         log.With("component", "publisher"),
	}
}

// Publish runs the publishing steps for source. A failed upload, link or
// pointer write ends the run for this file; everything after the pointer
// file is best effort. Completed steps are never rolled back.
func (p *Publisher) Publish(ctx context.Context, source string, id EpisodeIdentity, meta *metadata.Series, plan *Plan) *Outcome {
	out := &Outcome{Source: source}
	log := p.log.With("path", source, "series", filepath.Base(filepath.Dir(plan.DestinationDir)))

	if err := os.MkdirAll(plan.DestinationDir, 0755); err != nil {
		return out.fail(StepDirectory, fmt.Errorf("%w: create %s: %v", ErrWrite, plan.DestinationDir, err))
	}

	if meta != nil {
		p.sidecars.EnsureSeries(ctx, filepath.Dir(plan.DestinationDir), meta)
	}

	if err := p.uploader.Upload(ctx, source, plan.RemoteUploadDir()); err != nil {
		return out.fail(StepUpload, fmt.Errorf("%w: %v", ErrTransfer, err))
	}

	link, err := p.links.GetShareLink(ctx, plan.RemoteShareLookupPath)
	if err != nil || link == "" {
		if err == nil {
			err = errors.New("empty link")
		}
		return out.fail(StepLink, fmt.Errorf("%w: %s: %v", ErrLink, plan.RemoteShareLookupPath, err))
	}
	out.ShareURL = link

	strmPath := filepath.Join(plan.DestinationDir, id.StandardName+".strm")
	content := strmContent(link, id.StandardName+filepath.Ext(source))
	if err := os.WriteFile(strmPath, []byte(content), 0644); err != nil {
		return out.fail(StepStrm, fmt.Errorf("%w: %s: %v", ErrWrite, strmPath, err))
	}
	out.StrmPath = strmPath
	log.Info("wrote strm", "strm", strmPath)

	status, info := metadataInfo(id, meta)
	_, err = p.mappings.Upsert(ctx, mapping.Record{
		SourcePath:     source,
		StrmPath:       strmPath,
		RemoteShareURL: &link,
		MetadataStatus: &status,
		MetadataInfo:   &info,
	})
	if err != nil {
		log.Error("record mapping failed", "error", err)
		out.fail(StepMapping, fmt.Errorf("%w: mapping: %v", ErrWrite, err))
	} else {
		out.Mapped = true
	}

	if p.opts.Thumbnails && p.thumbnailer != nil {
		p.writeThumbnail(ctx, log, source, filepath.Join(plan.DestinationDir, id.StandardName+".jpg"))
	}

	if meta != nil {
		p.writeEpisodeNFO(log, filepath.Join(plan.DestinationDir, id.StandardName+".nfo"), id, meta)
	}

	out.Subtitles = p.copySubtitles(source, plan.DestinationDir, id.StandardName)

	// An unmapped source must stay on disk, or prune could never find its pointer.
	if p.opts.DeleteAfterUpload && out.Mapped {
		if err := os.Remove(source); err != nil {
			log.Warn("delete source failed", "error", err)
		} else {
			out.Deleted = true
			log.Info("deleted source after upload")
		}
	}

	return out
}

func (p *Publisher) writeThumbnail(ctx context.Context, log *slog.Logger, source, out string) {
	if info, err := os.Stat(out); err == nil && info.Size() > 0 {
		return
	}
	err := p.thumbnailer.ExtractFrame(ctx, source, out, p.opts.ThumbnailOffset)
	switch {
	case errors.Is(err, tools.ErrToolMissing):
		log.Debug("thumbnail skipped, extractor unavailable")
	case err != nil:
		log.Warn("thumbnail failed", "error", err)
	default:
		log.Info("wrote thumbnail", "dest", out)
	}
}

func (p *Publisher) writeEpisodeNFO(log *slog.Logger, path string, id EpisodeIdentity, meta *metadata.Series) {
	data, err := nfo.RenderEpisode(nfo.Episode{
		ShowTitle:  meta.Title(),
		Season:     id.SeasonNumber(),
		Episode:    id.EpisodeNumber(),
		ProviderID: meta.ProviderID,
	})
	if err == nil {
		err = nfo.WriteFile(path, data)
	}
	if err != nil {
		log.Warn("write episode nfo failed", "error", err)
	}
}

// strmContent is the pointer file body: the share link forced to download,
// with the display filename in the fragment.
func strmContent(link, displayName string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link + "?dl=1#" + url.PathEscape(displayName)
	}
	q := u.Query()
	q.Set("dl", "1")
	u.RawQuery = q.Encode()
	u.Fragment = displayName
	return u.String()
}

type matchInfo struct {
	Score      float64 `json:"score"`
	Confidence string  `json:"confidence"`
}

type successInfo struct {
	ProviderID int       `json:"provider_id"`
	Title      string    `json:"title"`
	Titles     []string  `json:"titles"`
	SeasonYear int       `json:"season_year,omitempty"`
	Episodes   int       `json:"episodes,omitempty"`
	Match      matchInfo `json:"match"`
}

type failureInfo struct {
	Error string `json:"error"`
	Query string `json:"query"`
}

// metadataInfo builds the status and JSON info stored with a mapping.
func metadataInfo(id EpisodeIdentity, meta *metadata.Series) (mapping.Status, string) {
	var (
		status mapping.Status
		v      any
	)
	if meta != nil {
		status = mapping.StatusSuccess
		v = successInfo{
			ProviderID: meta.ProviderID,
			Title:      meta.Title(),
			Titles:     meta.Titles(),
			SeasonYear: meta.SeasonYear,
			Episodes:   meta.Episodes,
			Match: matchInfo{
				Score:      meta.Match.Score,
				Confidence: meta.Match.Confidence.String(),
			},
		}
	} else {
		status = mapping.StatusFailed
		v = failureInfo{Error: "Not found", Query: id.Title}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return status, "{}"
	}
	return status, string(b)
}
