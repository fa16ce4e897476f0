package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath    string
	logLevel      string
	pruneOnly     bool
	skipMigration bool
)

var rootCmd = &cobra.Command{
	Use:   "strmsync [flags] <path>...",
	Short: "Offload anime to Seafile and publish .strm pointers",
	Long: `strmsync - offload local anime downloads to a Seafile library

Each video under the given paths is uploaded with rclone, shared through
a Seafile download link, and replaced in the local library by a .strm
pointer plus Kodi/Jellyfin sidecars (NFO, poster, thumbnail, subtitles).

Typically invoked by a download client on completion:
  strmsync "/data/downloads/[SubsPlease] Frieren - 05 (1080p).mkv"`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runSync,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	rootCmd.Flags().BoolVar(&pruneOnly, "prune", false, "Prune mappings whose source is gone, then exit")
	rootCmd.Flags().BoolVar(&skipMigration, "skip-migration", false, "Skip the legacy library migration for this run")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("strmsync {{.Version}}\n")
}
