// Package cmd — split command.
// This is the main command: it loads the source document, segments it at
// id-tagged heading boundaries per the split plan, converts each fragment
// with the bespoke style guide converter, and writes the output tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/styledoc/core/input"
	"github.com/gaurav-prasanna/styledoc/core/markdown"
	"github.com/gaurav-prasanna/styledoc/core/output"
	"github.com/gaurav-prasanna/styledoc/core/split"
	"github.com/gaurav-prasanna/styledoc/core/verify"
)

// Flag variables.
var (
	flagSplitOutputDir string
	flagPlanFile       string
	flagVerify         bool
)

var splitCmd = &cobra.Command{
	Use:   "split <input.html>",
	Short: "Split a style guide document into per-section Markdown files",
	Long: `Split reads one HTML style guide, locates its id-tagged <h2> headings, and
writes a README plus one Markdown file per section. The designated sub-split
section is split again at its <h3> headings into a nested directory.

Section-to-filename mappings come from the split plan. The built-in plan
targets the TypeScript style guide; pass --plan to supply your own YAML plan.
A heading missing from the document, or a sub-section heading missing from
the plan, aborts the run.

Examples:
  styledoc split guide.html --output_dir ./docs
  styledoc split guide.html --plan plan.yaml --verify`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringVar(&flagSplitOutputDir, "output_dir", "", "Output directory (default: current directory)")
	splitCmd.Flags().StringVar(&flagPlanFile, "plan", "", "Split plan YAML file (default: built-in TypeScript style guide plan)")
	splitCmd.Flags().BoolVar(&flagVerify, "verify", false, "Re-parse each written file and check its structure")
}

func runSplit(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	plan := split.DefaultPlan()
	if flagPlanFile != "" {
		var err error
		plan, err = split.LoadPlan(flagPlanFile)
		if err != nil {
			return err
		}
	}

	loader := input.New()
	doc, err := loader.Load(inputPath)
	if err != nil {
		return err
	}

	writer, err := output.New(flagSplitOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	splitter := split.New(plan, markdown.New(), writer)
	written, err := splitter.Run(doc, os.Stdout)
	if err != nil {
		return fmt.Errorf("splitting %s: %w", inputPath, err)
	}

	if flagVerify {
		if err := verifyWritten(written); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Verified %d files\n", len(written))
	}
	return nil
}

// verifyWritten re-reads each written file and checks it parses as Markdown
// opening with a level-1 heading, with no leaked placeholder tokens.
func verifyWritten(paths []string) error {
	checker := verify.New()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("verifying %s: %w", path, err)
		}
		if err := checker.Check(data); err != nil {
			return fmt.Errorf("verifying %s: %w", path, err)
		}
	}
	return nil
}
