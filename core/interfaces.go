// Package core defines the pipeline interfaces and shared types for styledoc.
// Each stage of the pipeline is a clean, testable interface.
package core

// HeadingMatch identifies one id-tagged heading element found in the source
// document. Start and End are byte offsets of the full heading element within
// the document text; TitleHTML is the raw, unconverted inner markup.
type HeadingMatch struct {
	ID        string
	TitleHTML string
	Start     int
	End       int
}

// DocMetadata holds metadata about a converted document.
type DocMetadata struct {
	SourcePath  string `json:"source_path"`
	Title       string `json:"title"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocContent holds the text and structured content of a document.
type DocContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// DocStructure holds structural metadata parsed from the content.
type DocStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
}

// DocJSON is the complete JSON output for a single document.
type DocJSON struct {
	Metadata  DocMetadata  `json:"metadata"`
	Content   DocContent   `json:"content"`
	Structure DocStructure `json:"structure"`
}

// DocumentLoader reads a source document into memory as UTF-8 text.
type DocumentLoader interface {
	Load(path string) (string, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// FragmentConverter converts one HTML fragment into Markdown text.
// The base heading level is the depth of the fragment's outermost heading;
// output heading depth is renormalized so that depth maps to a single #.
// Conversion is best-effort and never fails: malformed markup degrades to
// stripped text rather than an error.
type FragmentConverter interface {
	ConvertFragment(fragment string, baseHeadingLevel int) string
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta DocMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
