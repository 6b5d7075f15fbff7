// Package verify checks converted Markdown output with a real Markdown
// parser. It catches the two failure modes a regex conversion pipeline can
// realistically produce: a fragment whose renormalized heading did not end up
// as the opening level-1 heading, and a protection placeholder token that
// leaked into the output instead of being restored.
package verify

import (
	"fmt"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// placeholderRe matches the token families the fragment converter uses to
// shield tables and code blocks during conversion.
var placeholderRe = regexp.MustCompile(`@@(?:TBL|CODE)\d+@@`)

// Checker validates converted Markdown fragments.
type Checker struct {
	md goldmark.Markdown
}

// New creates a Checker.
func New() *Checker {
	return &Checker{md: goldmark.New()}
}

// Check parses content as Markdown and verifies that it opens with a level-1
// heading and contains no leaked placeholder tokens.
func (c *Checker) Check(content []byte) error {
	if tok := placeholderRe.Find(content); tok != nil {
		return fmt.Errorf("leaked placeholder token %q in output", tok)
	}

	root := c.md.Parser().Parse(text.NewReader(content))

	first := root.FirstChild()
	if first == nil {
		return fmt.Errorf("output is empty")
	}
	heading, ok := first.(*ast.Heading)
	if !ok {
		return fmt.Errorf("output does not open with a heading (found %s)", first.Kind())
	}
	if heading.Level != 1 {
		return fmt.Errorf("output opens with a level-%d heading, want level 1", heading.Level)
	}
	return nil
}
