package library

//go:generate mockgen -destination=mocks/resolver.go -package=mocks github.com/vmunix/strmsync/internal/library Resolver,ArtworkFetcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmunix/strmsync/internal/metadata"
)

// Resolver maps a series title to metadata.
type Resolver interface {
	Resolve(ctx context.Context, title string) (*metadata.Series, bool)
}

// MigrationReport summarizes a legacy migration pass.
type MigrationReport struct {
	Folders     int      // legacy folders visited
	Moved       int      // entries relocated under Anime/
	Skipped     int      // entries left behind because of conflicts or errors
	LeftInPlace []string // legacy folders that could not be removed
}

// Migrator moves series folders that sit directly under the library root
// into the Anime/ subtree, renaming them to their canonical titles.
type Migrator struct {
	root     string
	resolver Resolver
	sidecars *Sidecars
	log      *slog.Logger
}

// NewMigrator creates a migrator for the library at root.
func NewMigrator(root string, resolver Resolver, sidecars *Sidecars, log *slog.Logger) *Migrator {
	return &Migrator{
		root:     root,
		resolver: resolver,
		sidecars: sidecars,
		log:      log.With("component", "migrate"),
	}
}

// Migrate runs one pass over the library root. A missing root is not an
// error. Per-folder problems are logged and counted; only failures to read
// the root itself are returned.
func (m *Migrator) Migrate(ctx context.Context) (*MigrationReport, error) {
	report := &MigrationReport{}

	info, err := os.Stat(m.root)
	if errors.Is(err, fs.ErrNotExist) {
		m.log.Debug("library root missing, nothing to migrate", "root", m.root)
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat library root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library root %s is not a directory", m.root)
	}

	if err := os.MkdirAll(filepath.Join(m.root, AnimeDir), 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", AnimeDir, err)
	}

	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, fmt.Errorf("read library root: %w", err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !e.IsDir() || e.Name() == AnimeDir {
			continue
		}
		m.migrateFolder(ctx, e.Name(), report)
	}

	m.log.Info("legacy migration finished",
		"folders", report.Folders, "moved", report.Moved,
		"skipped", report.Skipped, "left_in_place", len(report.LeftInPlace))
	return report, nil
}

func (m *Migrator) migrateFolder(ctx context.Context, name string, report *MigrationReport) {
	legacy := filepath.Join(m.root, name)
	log := m.log.With("folder", name)

	meta, ok := m.resolver.Resolve(ctx, name)
	seriesName := SeriesName(meta, name)
	if seriesName == "" {
		log.Warn("cannot derive series name, leaving folder alone")
		return
	}
	report.Folders++

	target := filepath.Join(m.root, AnimeDir, seriesName)
	if err := os.MkdirAll(target, 0755); err != nil {
		log.Warn("create target folder failed", "target", target, "error", err)
		report.LeftInPlace = append(report.LeftInPlace, legacy)
		return
	}

	children, err := os.ReadDir(legacy)
	if err != nil {
		log.Warn("read legacy folder failed", "error", err)
		report.LeftInPlace = append(report.LeftInPlace, legacy)
		return
	}

	for _, c := range children {
		src := filepath.Join(legacy, c.Name())
		dst := filepath.Join(target, c.Name())

		if _, err := os.Lstat(dst); err == nil {
			log.Warn("destination exists, leaving entry in place", "entry", c.Name(), "target", dst)
			report.Skipped++
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("stat destination failed", "entry", c.Name(), "error", err)
			report.Skipped++
			continue
		}

		if err := os.Rename(src, dst); err != nil {
			log.Warn("move entry failed", "entry", c.Name(), "error", err)
			report.Skipped++
			continue
		}
		report.Moved++
	}

	if ok {
		m.sidecars.EnsureSeries(ctx, target, meta)
	}

	if err := os.Remove(legacy); err != nil {
		remaining, _ := os.ReadDir(legacy)
		log.Warn("legacy folder not removed", "remaining", len(remaining), "error", err)
		report.LeftInPlace = append(report.LeftInPlace, legacy)
		return
	}
	log.Info("migrated legacy folder", "target", target)
}
