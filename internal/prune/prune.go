// Package prune removes published pointer files whose source video is gone.
package prune

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"

	"github.com/vmunix/strmsync/internal/mapping"
)

// Store is the part of the mapping store the pruner needs.
type Store interface {
	IterateAll(ctx context.Context) iter.Seq2[mapping.Pair, error]
	Delete(ctx context.Context, sourcePath string) error
}

// Report summarizes a prune pass.
type Report struct {
	Scanned       int
	Pruned        int // mapping rows removed
	StrmRemoved   int
	AlreadyAbsent int // pointer file was already gone
	Errors        int // rows kept because their state could not be confirmed
}

// Pruner reconciles the mapping store against the filesystem.
// Only pointer files are removed; thumbnails, NFOs and subtitle copies stay.
type Pruner struct {
	store Store
	log   *slog.Logger
}

// New creates a pruner.
func New(store Store, log *slog.Logger) *Pruner {
	return &Pruner{store: store, log: log.With("component", "prune")}
}

// Prune scans every mapping and removes those whose source no longer exists.
// Removals are applied after the scan completes.
func (p *Pruner) Prune(ctx context.Context) (*Report, error) {
	report := &Report{}
	var gone []mapping.Pair

	for pair, err := range p.store.IterateAll(ctx) {
		if err != nil {
			return report, fmt.Errorf("scan mappings: %w", err)
		}
		report.Scanned++

		_, err := os.Stat(pair.SourcePath)
		switch {
		case err == nil:
			continue
		case errors.Is(err, fs.ErrNotExist):
			gone = append(gone, pair)
		default:
			p.log.Warn("cannot check source, keeping mapping", "path", pair.SourcePath, "error", err)
			report.Errors++
		}
	}

	for _, pair := range gone {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		p.remove(ctx, pair, report)
	}

	p.log.Info("prune finished",
		"scanned", report.Scanned, "pruned", report.Pruned,
		"strm_removed", report.StrmRemoved, "already_absent", report.AlreadyAbsent, "errors", report.Errors)
	return report, nil
}

func (p *Pruner) remove(ctx context.Context, pair mapping.Pair, report *Report) {
	log := p.log.With("path", pair.SourcePath, "strm", pair.StrmPath)

	err := os.Remove(pair.StrmPath)
	switch {
	case err == nil:
		report.StrmRemoved++
		log.Info("removed strm for deleted source")
	case errors.Is(err, fs.ErrNotExist):
		report.AlreadyAbsent++
	default:
		// keep the row so the next run retries the pointer file
		log.Warn("remove strm failed, keeping mapping", "error", err)
		report.Errors++
		return
	}

	if err := p.store.Delete(ctx, pair.SourcePath); err != nil {
		log.Warn("delete mapping failed", "error", err)
		report.Errors++
		return
	}
	report.Pruned++
}
