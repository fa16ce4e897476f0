package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/strmsync/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates syntax, required fields, and environment variable substitution without touching the database or network.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an annotated default config",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show which config file would be used",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	explicit := configPath
	if len(args) > 0 {
		explicit = args[0]
	}
	path, err := config.Discover(explicit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var cerr *config.ConfigError
		if errors.As(err, &cerr) {
			printConfigErrors(out, cerr)
			return errors.New("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	path, err := config.Discover(configPath)
	if err != nil {
		fmt.Fprintln(out, "No config found. Searched:")
		for _, p := range config.SearchPaths() {
			fmt.Fprintf(out, "  %s\n", p)
		}
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Local:      %s\n", cfg.Local.RootPath)
	fmt.Fprintf(w, "  Library:    %s\n", cfg.Local.LibraryPath)
	fmt.Fprintf(w, "  Extensions: %s\n", strings.Join(cfg.Local.Extensions, " "))
	fmt.Fprintf(w, "  Database:   %s\n", cfg.Database.Path)
	fmt.Fprintf(w, "  Remote:     %s:%s\n", cfg.Rclone.RemoteName, cfg.Rclone.RemoteRoot)
	if cfg.Rclone.BWLimit != "" {
		fmt.Fprintf(w, "  Bandwidth:  %s\n", cfg.Rclone.BWLimit)
	}
	fmt.Fprintf(w, "  Seafile:    %s (repo %s)\n", cfg.Seafile.Host, cfg.Seafile.RepoID)
	fmt.Fprintf(w, "  Log:        %s", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, " -> %s", cfg.Log.File)
	}
	fmt.Fprintln(w)

	var features []string
	if cfg.Local.DeleteAfterUpload {
		features = append(features, "delete-after-upload")
	}
	if cfg.Local.ShouldMigrate() {
		features = append(features, "migrate-legacy")
	}
	if cfg.Thumbnail.IsEnabled() {
		features = append(features, "thumbnails")
	}
	if cfg.AniList.CacheTTL > 0 {
		features = append(features, "metadata-cache")
	}
	if len(features) > 0 {
		fmt.Fprintf(w, "  Features:   %s\n", strings.Join(features, ", "))
	}
}
