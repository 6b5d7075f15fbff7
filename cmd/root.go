// Package cmd implements the CLI commands for styledoc using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "styledoc",
	Short: "styledoc — convert HTML style guides into structured Markdown",
	Long: `styledoc converts a single static HTML document into Markdown.

The split command segments a style guide at its id-tagged headings and writes
one Markdown file per section; the convert command turns any local HTML page
into a single Markdown, JSON, or PDF document.

Usage:
  styledoc split <input.html> [flags]
  styledoc convert <input.html> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
