package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/strmsync/internal/importer"
	"github.com/vmunix/strmsync/pkg/release"
)

// ParseResultJSON is the JSON form of one parsed name.
type ParseResultJSON struct {
	Input        string `json:"input"`
	Title        string `json:"title"`
	Season       string `json:"season"`
	Episode      string `json:"episode,omitempty"`
	StandardName string `json:"standard_name"`
	Group        string `json:"group,omitempty"`
	Resolution   string `json:"resolution,omitempty"`
	Checksum     string `json:"checksum,omitempty"`
	Version      int    `json:"version,omitempty"`
	CleanTitle   string `json:"clean_title"`
}

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <filename>...",
	Short: "Show how filenames are canonicalized (local, no network)",
	Long: `Parse release filenames and show the series title, season, episode and
standard name strmsync would publish them under.

Examples:
  strmsync parse "[SubsPlease] Sousou no Frieren - 05 (1080p) [A1B2C3D4].mkv"
  strmsync parse --json "Show.S02E03.1080p.WEB.mkv"
  strmsync parse --file names.txt`,
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output as JSON")
	parseCmd.Flags().StringP("file", "f", "", "Read filenames from file (one per line)")
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("file")

	names := args
	if inputFile != "" {
		fromFile, err := readNamesFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return errors.New("usage: strmsync parse <filename>... or strmsync parse --file <names.txt>")
	}

	results := make([]ParseResultJSON, 0, len(names))
	for _, name := range names {
		results = append(results, parseName(name))
	}

	out := cmd.OutOrStdout()
	if parseJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printParseResult(out, r)
	}
	return nil
}

func parseName(name string) ParseResultJSON {
	id := importer.Canonicalize(name)
	info := release.Parse(id.OriginalName)
	return ParseResultJSON{
		Input:        name,
		Title:        id.Title,
		Season:       id.Season,
		Episode:      id.Episode,
		StandardName: id.StandardName,
		Group:        info.Group,
		Resolution:   info.Resolution,
		Checksum:     info.Checksum,
		Version:      info.Version,
		CleanTitle:   info.CleanTitle,
	}
}

func printParseResult(w io.Writer, r ParseResultJSON) {
	fmt.Fprintf(w, "Input:      %s\n", r.Input)
	fmt.Fprintf(w, "Title:      %s\n", r.Title)
	fmt.Fprintf(w, "Season:     %s\n", r.Season)
	if r.Episode != "" {
		fmt.Fprintf(w, "Episode:    %s\n", r.Episode)
	}
	fmt.Fprintf(w, "Standard:   %s\n", r.StandardName)
	if r.Group != "" {
		fmt.Fprintf(w, "Group:      %s\n", r.Group)
	}
	if r.Resolution != "" {
		fmt.Fprintf(w, "Resolution: %s\n", r.Resolution)
	}
	if r.Version > 1 {
		fmt.Fprintf(w, "Version:    v%d\n", r.Version)
	}
	fmt.Fprintf(w, "Clean:      %s\n", r.CleanTitle)
}

// readNamesFile reads filenames from a file, one per line. Blank lines and
// # comments are skipped.
func readNamesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}
