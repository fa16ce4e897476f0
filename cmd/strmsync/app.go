package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vmunix/strmsync/internal/artwork"
	"github.com/vmunix/strmsync/internal/config"
	"github.com/vmunix/strmsync/internal/importer"
	"github.com/vmunix/strmsync/internal/library"
	"github.com/vmunix/strmsync/internal/logging"
	"github.com/vmunix/strmsync/internal/mapping"
	"github.com/vmunix/strmsync/internal/metadata"
	"github.com/vmunix/strmsync/internal/prune"
	"github.com/vmunix/strmsync/internal/tools"
	"github.com/vmunix/strmsync/pkg/anilist"
	"github.com/vmunix/strmsync/pkg/seafile"
)

// app holds the wired components for one invocation.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	log    *slog.Logger
	db     *sql.DB
	store  *mapping.Store

	cache    *metadata.Cache
	resolver *metadata.Resolver
	sidecars *library.Sidecars
}

// loadConfig resolves and loads the config, applying flag overrides.
func loadConfig(stderr io.Writer) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	path, err := config.Discover(configPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		var cerr *config.ConfigError
		if errors.As(err, &cerr) {
			printConfigErrors(stderr, cerr)
			return nil, fmt.Errorf("configuration invalid: %s", path)
		}
		return nil, fmt.Errorf("load config: %w", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	log := logger.Logger

	db, err := mapping.Open(cfg.Database.Path)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	client := anilist.New(
		anilist.WithBaseURL(cfg.AniList.URL),
		anilist.WithMinInterval(cfg.AniList.MinInterval),
		anilist.WithTimeout(cfg.AniList.Timeout),
		anilist.WithLogger(log),
	)

	cache := metadata.NewCache(db)
	var searcher metadata.Searcher = client
	if cfg.AniList.CacheTTL > 0 {
		searcher = metadata.NewCachedSearcher(client, cache, cfg.AniList.CacheTTL, log)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		log:      log,
		db:       db,
		store:    mapping.NewStore(db),
		cache:    cache,
		resolver: metadata.NewResolver(searcher, log),
		sidecars: library.NewSidecars(artwork.New(artwork.WithLogger(log)), log),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Warn("close database", "error", err)
	}
	_ = a.logger.Close()
}

func (a *app) importer() *importer.Importer {
	cfg := a.cfg

	deps := importer.Deps{
		Resolver: a.resolver,
		Uploader: tools.NewRclone(tools.RcloneOptions{
			Binary:    cfg.Rclone.Binary,
			Remote:    cfg.Rclone.RemoteName,
			BWLimit:   cfg.Rclone.BWLimit,
			Transfers: cfg.Rclone.Transfers,
		}, a.log),
		Links:    seafile.New(cfg.Seafile.Host, cfg.Seafile.APIToken, cfg.Seafile.RepoID, seafile.WithLogger(a.log)),
		Sidecars: a.sidecars,
		Mappings: a.store,
	}
	if cfg.Thumbnail.IsEnabled() {
		deps.Thumbnailer = tools.NewFFmpeg(cfg.Thumbnail.Binary, a.log)
	}

	return importer.New(importer.Config{
		LocalRoot:         cfg.Local.RootPath,
		LibraryRoot:       cfg.Local.LibraryPath,
		RemoteRoot:        cfg.Rclone.RemoteRoot,
		UploadPrefix:      cfg.Rclone.UploadPrefix,
		Extensions:        cfg.Local.Extensions,
		DeleteAfterUpload: cfg.Local.DeleteAfterUpload,
		Thumbnails:        cfg.Thumbnail.IsEnabled(),
		ThumbnailOffset:   cfg.Thumbnail.Offset,
	}, deps, a.log)
}

func (a *app) migrator() *library.Migrator {
	return library.NewMigrator(a.cfg.Local.LibraryPath, a.resolver, a.sidecars, a.log)
}

func (a *app) pruner() *prune.Pruner {
	return prune.New(a.store, a.log)
}

// prune reconciles the store and drops expired metadata cache entries.
func (a *app) prune(ctx context.Context) (*prune.Report, error) {
	report, err := a.pruner().Prune(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := a.cache.Prune(ctx); err != nil {
		a.log.Warn("metadata cache prune failed", "error", err)
	} else if n > 0 {
		a.log.Info("expired metadata cache entries removed", "count", n)
	}
	return report, nil
}
