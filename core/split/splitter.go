package split

import (
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/styledoc/core"
	"github.com/gaurav-prasanna/styledoc/core/markdown"
	"github.com/gaurav-prasanna/styledoc/core/output"
)

var (
	h1Re = regexp.MustCompile(`(?is)<h1\b[^>]*>(.*?)</h1>`)
	h2Re = regexp.MustCompile(`(?is)<h2\b[^>]*\bid="([^"]+)"[^>]*>(.*?)</h2>`)
	h3Re = regexp.MustCompile(`(?is)<h3\b[^>]*\bid="([^"]+)"[^>]*>(.*?)</h3>`)
)

// Splitter slices a source document at id-tagged heading boundaries and
// converts each slice to Markdown.
type Splitter struct {
	plan   Plan
	conv   core.FragmentConverter
	writer *output.Writer
}

// New creates a Splitter for the given plan, fragment converter, and writer.
func New(plan Plan, conv core.FragmentConverter, writer *output.Writer) *Splitter {
	return &Splitter{plan: plan, conv: conv, writer: writer}
}

// Run segments the document and writes every fragment named by the plan.
// Per-file progress is printed to progress. Any missing structural element is
// a fatal error naming the element; files already written when a later error
// is detected are left on disk.
//
// It returns the paths of all files written, including any written before an
// error aborted the run.
func (s *Splitter) Run(doc string, progress io.Writer) ([]string, error) {
	var written []string

	h2s := findHeadings(doc, h2Re)
	if len(h2s) == 0 {
		return written, fmt.Errorf("no <h2> headings found; cannot split document")
	}

	h1Loc := h1Re.FindStringIndex(doc)
	if h1Loc == nil {
		return written, fmt.Errorf("no <h1> title heading found; cannot generate %s", s.plan.ReadmeFile)
	}

	// README: from the <h1> up to the first <h2>, plus a plain list of all
	// top-level section titles. No links are fabricated; the source encodes
	// none that survive conversion.
	readmeHTML := doc[h1Loc[0]:h2s[0].Start] + sectionListHTML(h2s)
	path, err := s.write(s.plan.ReadmeFile, readmeHTML, 1)
	if err != nil {
		return written, err
	}
	written = append(written, path)
	fmt.Fprintf(progress, "✓ Written: %s\n", path)

	for _, rule := range s.plan.Sections {
		chunk, err := sectionChunk(doc, h2s, rule.ID)
		if err != nil {
			return written, err
		}
		path, err := s.write(rule.File, chunk, 2)
		if err != nil {
			return written, err
		}
		written = append(written, path)
		fmt.Fprintf(progress, "✓ Written: %s\n", path)
	}

	if s.plan.SubSplit.ID != "" {
		if err := s.runSubSplit(doc, h2s, progress, &written); err != nil {
			return written, err
		}
	}

	return written, nil
}

// runSubSplit splits the designated section at its internal <h3> headings.
func (s *Splitter) runSubSplit(doc string, h2s []core.HeadingMatch, progress io.Writer, written *[]string) error {
	sub := s.plan.SubSplit

	chunk, err := sectionChunk(doc, h2s, sub.ID)
	if err != nil {
		return err
	}

	// Offsets from this scan are relative to the chunk, not the document.
	h3s := findHeadings(chunk, h3Re)
	if len(h3s) == 0 {
		return fmt.Errorf("no <h3> headings found within section %q", sub.ID)
	}

	files := make(map[string]string, len(sub.Sections))
	for _, r := range sub.Sections {
		files[r.ID] = r.File
	}

	// Intro: from the section's own heading up to the first <h3>. It still
	// contains the <h2>, so it converts at base level 2.
	intro := chunk[:h3s[0].Start]
	path, err := s.write(filepath.Join(sub.Dir, sub.Intro), intro, 2)
	if err != nil {
		return err
	}
	*written = append(*written, path)
	fmt.Fprintf(progress, "✓ Written: %s\n", path)

	for i, h := range h3s {
		file, ok := files[h.ID]
		if !ok {
			// Fail loudly rather than silently dropping content.
			return fmt.Errorf("unmapped <h3 id=%q> in section %q; add a mapping to the plan", h.ID, sub.ID)
		}

		end := len(chunk)
		if i+1 < len(h3s) {
			end = h3s[i+1].Start
		}
		path, err := s.write(filepath.Join(sub.Dir, file), chunk[h.Start:end], 3)
		if err != nil {
			return err
		}
		*written = append(*written, path)
		fmt.Fprintf(progress, "✓ Written: %s\n", path)
	}
	return nil
}

// write converts one fragment and writes it to relPath under the output root.
func (s *Splitter) write(relPath, fragment string, baseLevel int) (string, error) {
	md := s.conv.ConvertFragment(fragment, baseLevel)
	return s.writer.WriteSection(relPath, []byte(md))
}

// findHeadings returns every id-tagged heading matched by re, in document
// order, with byte offsets into doc.
func findHeadings(doc string, re *regexp.Regexp) []core.HeadingMatch {
	var out []core.HeadingMatch
	for _, m := range re.FindAllStringSubmatchIndex(doc, -1) {
		out = append(out, core.HeadingMatch{
			ID:        doc[m[2]:m[3]],
			TitleHTML: doc[m[4]:m[5]],
			Start:     m[0],
			End:       m[1],
		})
	}
	return out
}

// sectionChunk returns the document slice from the heading with the given id
// to the start of the next top-level heading (or end of document).
func sectionChunk(doc string, h2s []core.HeadingMatch, id string) (string, error) {
	for i, h := range h2s {
		if h.ID != id {
			continue
		}
		end := len(doc)
		if i+1 < len(h2s) {
			end = h2s[i+1].Start
		}
		return doc[h.Start:end], nil
	}
	return "", fmt.Errorf("missing expected <h2 id=%q> in document", id)
}

// sectionListHTML builds the plain section list appended to the README
// fragment: titles only, no hyperlinks.
func sectionListHTML(h2s []core.HeadingMatch) string {
	var b strings.Builder
	b.WriteString("\n<p><strong>Sections</strong></p>\n<ul>")
	for _, h := range h2s {
		b.WriteString("<li>" + html.EscapeString(markdown.StripTags(h.TitleHTML)) + "</li>")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
