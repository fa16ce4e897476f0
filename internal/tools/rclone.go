package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// RcloneOptions configures an Rclone uploader.
type RcloneOptions struct {
	Binary    string // default "rclone"
	Remote    string // rclone remote name, without the colon
	BWLimit   string // passed through to --bwlimit when set
	Transfers int    // default 2
}

// Rclone uploads files with `rclone copy`.
type Rclone struct {
	opts RcloneOptions
	log  *slog.Logger
}

// NewRclone creates an uploader.
func NewRclone(opts RcloneOptions, log *slog.Logger) *Rclone {
	if opts.Binary == "" {
		opts.Binary = "rclone"
	}
	if opts.Transfers <= 0 {
		opts.Transfers = 2
	}
	return &Rclone{opts: opts, log: log.With("component", "rclone")}
}

// Upload copies localFile into remoteDir on the configured remote.
// Files already present remotely are skipped by rclone, so repeating an
// upload is a successful no-op.
func (r *Rclone) Upload(ctx context.Context, localFile, remoteDir string) error {
	bin, err := lookup(r.opts.Binary)
	if err != nil {
		return err
	}

	args := r.args(localFile, remoteDir)
	log := r.log.With("path", localFile, "remote", args[2])
	if info, err := os.Stat(localFile); err == nil {
		log = log.With("size", humanize.Bytes(uint64(info.Size())))
	}
	log.Info("uploading")

	start := time.Now()
	err = runCommand(ctx, func(line string) {
		r.log.Debug(line)
	}, bin, args...)
	if err != nil {
		return fmt.Errorf("rclone copy %s: %w", localFile, err)
	}

	log.Info("upload finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (r *Rclone) args(localFile, remoteDir string) []string {
	remoteDir = strings.TrimPrefix(remoteDir, "/")
	args := []string{
		"copy", localFile, r.opts.Remote + ":" + remoteDir,
		"--transfers", strconv.Itoa(r.opts.Transfers),
		"--ignore-existing",
	}
	if r.opts.BWLimit != "" {
		args = append(args, "--bwlimit", r.opts.BWLimit)
	}
	return args
}
