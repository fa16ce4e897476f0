package main

import (
	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove mappings and .strm files whose source video is gone",
	Long: `Checks every stored mapping against the local filesystem. When the
source video no longer exists its .strm pointer is deleted and the mapping
row removed. NFO, artwork, thumbnail and subtitle sidecars are left alone.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move legacy Library/{Title} folders under Library/Anime",
	Long: `Moves series folders that sit directly under the library root into
the Anime/ subtree, renaming them to their AniList title when one resolves.
Existing destination entries are never overwritten; conflicting folders are
left in place and reported.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runPrune(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.prune(cmd.Context())
	if err != nil {
		return err
	}
	printPruneReport(cmd.OutOrStdout(), report)
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.migrator().Migrate(cmd.Context())
	if err != nil {
		return err
	}
	printMigrationReport(cmd.OutOrStdout(), report)
	return nil
}
