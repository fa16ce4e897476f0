package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/strmsync/internal/importer"
	"github.com/vmunix/strmsync/internal/library"
	"github.com/vmunix/strmsync/internal/prune"
)

func runSync(cmd *cobra.Command, args []string) error {
	if !pruneOnly && len(args) == 0 {
		return errors.New("no input paths given (use --prune for prune-only mode)")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if pruneOnly {
		report, err := a.prune(ctx)
		if err != nil {
			return err
		}
		printPruneReport(out, report)
		return nil
	}

	if a.cfg.Local.ShouldMigrate() && !skipMigration {
		report, err := a.migrator().Migrate(ctx)
		if err != nil {
			// A broken library root will surface again in the import itself.
			a.log.Error("legacy migration failed", "error", err)
		} else if report.Folders > 0 || len(report.LeftInPlace) > 0 {
			printMigrationReport(out, report)
		}
	}

	sum := a.importer().Run(ctx, args)
	printSummary(out, sum)
	return nil
}

func printSummary(w io.Writer, sum *importer.Summary) {
	fmt.Fprintf(w, "Seen: %d  Published: %d  Skipped: %d  Failed: %d  (%s)\n",
		sum.Seen, sum.Published, sum.Skipped, sum.Failed, sum.Elapsed.Round(time.Millisecond))

	for _, class := range slices.Sorted(maps.Keys(sum.Failures)) {
		fmt.Fprintf(w, "  %-14s %d\n", class+":", sum.Failures[class])
	}
	for _, arg := range sum.FailedArgs {
		fmt.Fprintf(w, "  could not process %s\n", arg)
	}
}

func printPruneReport(w io.Writer, r *prune.Report) {
	fmt.Fprintf(w, "Pruned %d of %d mappings (%d .strm removed, %d already absent)\n",
		r.Pruned, r.Scanned, r.StrmRemoved, r.AlreadyAbsent)
	if r.Errors > 0 {
		fmt.Fprintf(w, "  %d kept: source state could not be confirmed\n", r.Errors)
	}
}

func printMigrationReport(w io.Writer, r *library.MigrationReport) {
	fmt.Fprintf(w, "Migrated %d legacy folders (%d entries moved, %d skipped)\n",
		r.Folders, r.Moved, r.Skipped)
	if len(r.LeftInPlace) > 0 {
		fmt.Fprintln(w, "Left in place (resolve manually):")
		for _, dir := range r.LeftInPlace {
			fmt.Fprintf(w, "  - %s\n", dir)
		}
	}
}
