// Package cmd — convert command.
// One-shot conversion of a local HTML page into a single output document:
// load → extract → normalize → render → write.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/styledoc/core"
	"github.com/gaurav-prasanna/styledoc/core/extract"
	"github.com/gaurav-prasanna/styledoc/core/input"
	"github.com/gaurav-prasanna/styledoc/core/normalize"
	"github.com/gaurav-prasanna/styledoc/core/output"
	"github.com/gaurav-prasanna/styledoc/core/render"
)

// Flag variables.
var (
	flagMarkdown  bool
	flagJSON      bool
	flagPDF       bool
	flagOutputDir string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.html>",
	Short: "Convert a local HTML file to the specified output format",
	Long: `Convert reads a local HTML file, extracts its main content, normalizes it to
Markdown, and writes the result in the specified output format.

Examples:
  styledoc convert page.html --markdown
  styledoc convert page.html --json --output_dir ./out
  styledoc convert page.html --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	// Output directory.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	// Initialize pipeline components.
	loader := input.New()
	extractor := extract.New()
	normalizer := normalize.New()

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	data, err := processFile(inputPath, loader, extractor, normalizer, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WriteConverted(inputPath, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// processFile runs a single file through the full pipeline.
func processFile(
	inputPath string,
	loader core.DocumentLoader,
	extractor core.Extractor,
	normalizer core.Normalizer,
	renderer core.Renderer,
) ([]byte, error) {
	// 1. Load
	html, err := loader.Load(inputPath)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	// 2. Extract main content
	content, err := extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	// 3. Normalize to Markdown
	md, err := normalizer.Normalize(content)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	// Metadata comes from the raw document, before noise removal.
	meta := core.DocMetadata{
		SourcePath:  inputPath,
		Title:       extract.Title(html),
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}

	// 4. Render to output format
	data, err := renderer.Render(md, meta)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return data, nil
}

// selectRenderer creates the appropriate Renderer based on flags, requiring
// exactly one output format.
func selectRenderer() (core.Renderer, error) {
	formatCount := 0
	for _, f := range []bool{flagMarkdown, flagJSON, flagPDF} {
		if f {
			formatCount++
		}
	}
	if formatCount == 0 {
		return nil, fmt.Errorf("exactly one output format is required: --markdown, --json, or --pdf")
	}
	if formatCount > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	default:
		return render.NewPDFRenderer(), nil
	}
}
