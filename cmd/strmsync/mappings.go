package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vmunix/strmsync/internal/mapping"
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Inspect the source to .strm mapping store",
}

var mappingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mappings, most recently updated first",
	Args:  cobra.NoArgs,
	RunE:  runMappingsList,
}

var mappingsShowCmd = &cobra.Command{
	Use:   "show <source-or-strm-path>",
	Short: "Show one mapping by source path or by .strm path",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingsShow,
}

func init() {
	rootCmd.AddCommand(mappingsCmd)
	mappingsCmd.AddCommand(mappingsListCmd)
	mappingsCmd.AddCommand(mappingsShowCmd)

	mappingsListCmd.Flags().String("status", "", "Filter by metadata status (SUCCESS, FAILED)")
	mappingsListCmd.Flags().Int("limit", 50, "Maximum rows to show (0 for all)")
	mappingsListCmd.Flags().Int("offset", 0, "Rows to skip")
}

func runMappingsList(cmd *cobra.Command, _ []string) error {
	statusFlag, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	filter := mapping.Filter{Limit: limit, Offset: offset}
	if statusFlag != "" {
		status := mapping.Status(strings.ToUpper(statusFlag))
		if !status.Valid() {
			return fmt.Errorf("invalid --status %q: want SUCCESS or FAILED", statusFlag)
		}
		filter.Status = &status
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	records, total, err := a.store.List(cmd.Context(), filter)
	if err != nil {
		return err
	}
	printMappings(cmd.OutOrStdout(), records, total)
	return nil
}

func runMappingsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	rec, err := a.store.Get(ctx, path)
	if errors.Is(err, mapping.ErrNotFound) {
		rec, err = a.store.FindByStrm(ctx, path)
	}
	if errors.Is(err, mapping.ErrNotFound) {
		return fmt.Errorf("no mapping for %s", path)
	}
	if err != nil {
		return err
	}

	printMapping(cmd.OutOrStdout(), rec)
	return nil
}

func printMappings(w io.Writer, records []*mapping.Record, total int) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No mappings stored.")
		return
	}

	fmt.Fprintf(w, "Mappings (%d of %d):\n\n", len(records), total)
	fmt.Fprintf(w, "  %-8s %-14s %-50s %s\n", "STATUS", "UPDATED", "STRM", "SOURCE")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 100))

	for _, rec := range records {
		fmt.Fprintf(w, "  %-8s %-14s %-50s %s\n",
			statusText(rec.MetadataStatus),
			humanize.Time(rec.LastUpdated),
			truncatePath(rec.StrmPath, 50),
			rec.SourcePath)
	}
}

func printMapping(w io.Writer, rec *mapping.Record) {
	fmt.Fprintf(w, "Source:   %s\n", rec.SourcePath)
	fmt.Fprintf(w, "Strm:     %s\n", rec.StrmPath)
	if rec.RemoteShareURL != nil {
		fmt.Fprintf(w, "Link:     %s\n", *rec.RemoteShareURL)
	}
	fmt.Fprintf(w, "Metadata: %s\n", statusText(rec.MetadataStatus))
	if rec.MetadataInfo != nil {
		fmt.Fprintf(w, "Info:     %s\n", *rec.MetadataInfo)
	}
	fmt.Fprintf(w, "Updated:  %s (%s)\n", rec.LastUpdated.Local().Format("2006-01-02 15:04:05"), humanize.Time(rec.LastUpdated))
}

func statusText(s *mapping.Status) string {
	if s == nil {
		return "-"
	}
	return string(*s)
}

// truncatePath shortens a path for display, keeping the end visible.
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[:maxLen]
	}
	return "..." + path[len(path)-(maxLen-3):]
}
