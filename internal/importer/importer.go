// Package importer publishes local video files as streamable library
// entries: upload, share link, pointer file, sidecars and mapping record.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/vmunix/strmsync/internal/library"
)

// Config for the importer.
type Config struct {
	LocalRoot         string
	LibraryRoot       string
	RemoteRoot        string
	UploadPrefix      string
	Extensions        []string
	DeleteAfterUpload bool
	Thumbnails        bool
	ThumbnailOffset   time.Duration
}

// Deps are the collaborators an Importer drives.
type Deps struct {
	Resolver    Resolver
	Uploader    Uploader
	Links       LinkProvider
	Thumbnailer Thumbnailer // optional
	Sidecars    *library.Sidecars
	Mappings    MappingWriter
}

// Importer walks input paths and publishes every matching video.
// Files are processed one at a time.
type Importer struct {
	extensions map[string]bool
	planner    *Planner
	resolver   Resolver
	publisher  *Publisher
	log        *slog.Logger
}

// New creates a new importer.
func New(cfg Config, deps Deps, log *slog.Logger) *Importer {
	return &Importer{
		extensions: extensionSet(cfg.Extensions),
		planner:    NewPlanner(cfg.LocalRoot, cfg.LibraryRoot, cfg.RemoteRoot, cfg.UploadPrefix),
		resolver:   deps.Resolver,
		publisher: NewPublisher(deps.Uploader, deps.Links, deps.Thumbnailer, deps.Sidecars, deps.Mappings, PublisherOptions{
			DeleteAfterUpload: cfg.DeleteAfterUpload,
			Thumbnails:        cfg.Thumbnails,
			ThumbnailOffset:   cfg.ThumbnailOffset,
		}, log),
		log: log.With("component", "importer"),
	}
}

// Summary describes one run.
type Summary struct {
	Seen       int
	Published  int
	Skipped    int // file arguments with an unsupported extension
	Failed     int
	Failures   map[string]int // by failure class
	FailedArgs []string       // arguments that could not be processed at all
	Elapsed    time.Duration
}

func (s *Summary) record(err error) {
	s.Failed++
	if s.Failures == nil {
		s.Failures = make(map[string]int)
	}
	s.Failures[failureClass(err)]++
}

// Run processes each path. A path is a video file or a directory searched
// recursively. A failure in one path never stops the others.
func (i *Importer) Run(ctx context.Context, paths []string) *Summary {
	start := time.Now()
	sum := &Summary{}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			i.log.Warn("run cancelled", "error", err)
			break
		}
		if err := i.runPath(ctx, p, sum); err != nil {
			i.log.Error("path failed", "path", p, "error", err)
			sum.FailedArgs = append(sum.FailedArgs, p)
		}
	}

	sum.Elapsed = time.Since(start)
	i.log.Info("job execution finished",
		"seen", sum.Seen, "published", sum.Published, "skipped", sum.Skipped, "failed", sum.Failed,
		"failed_args", len(sum.FailedArgs), "elapsed", sum.Elapsed.Round(time.Millisecond))
	return sum
}

// runPath handles one argument. Panics are turned into errors so the next
// argument still runs.
func (i *Importer) runPath(ctx context.Context, p string, sum *Summary) (err error) {
	defer func() {
		if r := recover(); r != nil {
			i.log.Error("panic while processing path", "path", p, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	if !info.IsDir() {
		if !i.extensions[strings.ToLower(filepath.Ext(p))] {
			i.log.Info("skipping unsupported file", "path", p)
			sum.Skipped++
			return nil
		}
		i.processFile(ctx, p, sum)
		return nil
	}

	i.log.Info("scanning directory", "path", p)
	for _, f := range findVideos(p, i.extensions, i.log) {
		if err := ctx.Err(); err != nil {
			return err
		}
		i.processFile(ctx, f, sum)
	}
	return nil
}

// processFile runs the pipeline for a single video.
func (i *Importer) processFile(ctx context.Context, file string, sum *Summary) {
	sum.Seen++
	log := i.log.With("path", file)

	// containment is checked before the metadata lookup to avoid a wasted request
	if _, err := i.planner.Relative(file); err != nil {
		log.Warn("skipping file", "error", err)
		sum.record(err)
		return
	}

	id := Canonicalize(file)
	meta, _ := i.resolver.Resolve(ctx, id.Title)
	seriesDir := library.SeriesName(meta, id.Title)

	plan, err := i.planner.Plan(file, seriesDir, id.Season)
	if err != nil {
		log.Warn("skipping file", "error", err)
		sum.record(err)
		return
	}

	log.Info("processing", "standard_name", id.StandardName, "series", seriesDir, "season", id.Season)
	out := i.publisher.Publish(ctx, file, id, meta, plan)
	if !out.OK() {
		level := slog.LevelWarn
		if errors.Is(out.Err, ErrWrite) {
			level = slog.LevelError
		}
		log.Log(ctx, level, "publish failed", "step", string(out.Step), "error", out.Err)
		sum.record(out.Err)
		return
	}
	sum.Published++
}
