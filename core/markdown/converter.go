// Package markdown implements the FragmentConverter interface.
// It converts HTML fragments of a style guide document into Markdown using
// ordered regex passes rather than a full HTML parse tree. Tables and fenced
// code blocks are excised behind placeholder tokens before the generic passes
// run, then restored verbatim at the end, so their inner markup survives.
package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	// Anchor-only paragraphs and bare anchors are pure link targets; they
	// carry no content and vanish entirely.
	anchorParaRe = regexp.MustCompile(`(?i)<p>\s*(<a\s+id=[^>]+></a>\s*)+</p>`)
	anchorRe     = regexp.MustCompile(`(?i)<a\s+id=[^>]+></a>`)

	tableRe = regexp.MustCompile(`(?is)<table\b.*?</table>`)
	codeRe  = regexp.MustCompile(`(?is)<pre><code(?:[^>]*?class="(?P<class>[^"]*)")?[^>]*>(?P<code>.*?)</code></pre>`)

	blockquoteRe = regexp.MustCompile(`(?is)<blockquote>(.*?)</blockquote>`)

	paraJoinRe  = regexp.MustCompile(`(?i)</p>\s*<p[^>]*>`)
	paraOpenRe  = regexp.MustCompile(`(?i)<p[^>]*>`)
	paraCloseRe = regexp.MustCompile(`(?i)</p>`)

	ulRe = regexp.MustCompile(`(?is)<ul[^>]*>(.*?)</ul>`)
	olRe = regexp.MustCompile(`(?is)<ol[^>]*>(.*?)</ol>`)
	liRe = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)

	emRe         = regexp.MustCompile(`(?is)<em>(.*?)</em>`)
	strongRe     = regexp.MustCompile(`(?is)<strong>(.*?)</strong>`)
	inlineCodeRe = regexp.MustCompile(`(?is)<code\b[^>]*>(.*?)</code>`)

	brRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe = regexp.MustCompile(`<[^>]+>`)

	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
)

// headingRes[i] matches <h(i+1)>…</h(i+1)>. One pattern per level since RE2
// has no backreferences to pair opening and closing tags.
var headingRes = func() [6]*regexp.Regexp {
	var res [6]*regexp.Regexp
	for lvl := 1; lvl <= 6; lvl++ {
		res[lvl-1] = regexp.MustCompile(fmt.Sprintf(`(?is)<h%d\b[^>]*>(.*?)</h%d>`, lvl, lvl))
	}
	return res
}()

// Converter turns HTML fragments into Markdown.
type Converter struct{}

// New creates a Converter.
func New() *Converter {
	return &Converter{}
}

// ConvertFragment converts one HTML fragment into Markdown. Headings at depth
// baseHeadingLevel come out as level-1 Markdown headings; deeper headings are
// renormalized relative to that and clamped to [1, 6]. Malformed markup never
// produces an error: anything the passes don't recognize is stripped to text.
func (c *Converter) ConvertFragment(fragment string, baseHeadingLevel int) string {
	fragment = normalizeLineEndings(fragment)

	fragment = anchorParaRe.ReplaceAllString(fragment, "")
	fragment = anchorRe.ReplaceAllString(fragment, "")

	// Protect tables and code blocks before the generic passes. Each block
	// family gets its own token namespace so restoring one family can never
	// clobber a placeholder of the other.
	fragment, tables := protect(fragment, "TBL", tableRe, renderTable)
	fragment, codes := protect(fragment, "CODE", codeRe, renderCodeBlock)

	fragment = blockquoteRe.ReplaceAllStringFunc(fragment, func(m string) string {
		return renderBlockquote(blockquoteRe.FindStringSubmatch(m)[1])
	})

	fragment = convertHeadings(fragment, baseHeadingLevel)

	// Paragraph boundaries become blank lines; stray tags vanish.
	fragment = paraJoinRe.ReplaceAllString(fragment, "\n\n")
	fragment = paraOpenRe.ReplaceAllString(fragment, "")
	fragment = paraCloseRe.ReplaceAllString(fragment, "\n\n")

	fragment = ulRe.ReplaceAllStringFunc(fragment, func(m string) string {
		return convertList(ulRe.FindStringSubmatch(m)[1], false)
	})
	fragment = olRe.ReplaceAllStringFunc(fragment, func(m string) string {
		return convertList(olRe.FindStringSubmatch(m)[1], true)
	})

	fragment = emRe.ReplaceAllStringFunc(fragment, func(m string) string {
		return "*" + StripTags(emRe.FindStringSubmatch(m)[1]) + "*"
	})
	fragment = strongRe.ReplaceAllStringFunc(fragment, func(m string) string {
		return "**" + StripTags(strongRe.FindStringSubmatch(m)[1]) + "**"
	})

	// Inline code runs after emphasis so code content is not re-processed
	// as emphasis.
	fragment = inlineCodeRe.ReplaceAllStringFunc(fragment, func(m string) string {
		return "`" + StripTags(inlineCodeRe.FindStringSubmatch(m)[1]) + "`"
	})

	fragment = brRe.ReplaceAllString(fragment, "\n")

	// Drop remaining tags but keep their text, then unescape entities.
	// Restoration must come after this pass so placeholder tokens are not
	// mistaken for strippable markup.
	fragment = tagRe.ReplaceAllString(fragment, "")
	fragment = html.UnescapeString(fragment)

	fragment = restore(fragment, "TBL", tables)
	fragment = restore(fragment, "CODE", codes)

	return TidyWhitespace(fragment)
}

// StripTags flattens inline markup to plain text: <br> becomes a newline, all
// other tags are removed, entities are unescaped, and the result is trimmed.
func StripTags(s string) string {
	s = brRe.ReplaceAllString(s, "\n")
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// TidyWhitespace applies the final whitespace discipline: trailing horizontal
// whitespace is stripped from each line, runs of 3+ newlines collapse to 2,
// and the result is trimmed and terminated by exactly one newline.
func TidyWhitespace(s string) string {
	s = trailingSpaceRe.ReplaceAllString(s, "\n")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s) + "\n"
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// protect replaces every match of re with a placeholder token and stores the
// transformed block for later restoration. Tokens look like @@TBL3@@ and are
// scoped to a single conversion call.
func protect(text, family string, re *regexp.Regexp, transform func(match []string) string) (string, []string) {
	var blocks []string
	out := re.ReplaceAllStringFunc(text, func(m string) string {
		blocks = append(blocks, transform(re.FindStringSubmatch(m)))
		return fmt.Sprintf("@@%s%d@@", family, len(blocks)-1)
	})
	return out, blocks
}

// restore substitutes stored blocks back for their placeholder tokens.
func restore(text, family string, blocks []string) string {
	for i, block := range blocks {
		text = strings.Replace(text, fmt.Sprintf("@@%s%d@@", family, i), block, 1)
	}
	return text
}

// renderTable keeps the table as raw HTML. Markdown table syntax cannot
// represent arbitrary cell spans, so fidelity wins over idiomatic Markdown.
func renderTable(match []string) string {
	table := html.UnescapeString(match[0])
	table = normalizeLineEndings(table)
	return "\n\n" + table + "\n\n"
}

// renderCodeBlock turns a <pre><code> pair into a fenced Markdown code block.
// The language tag is inferred from the class attribute; an unrecognized or
// absent class yields an untagged fence.
func renderCodeBlock(match []string) string {
	class := strings.ToLower(match[codeRe.SubexpIndex("class")])
	raw := match[codeRe.SubexpIndex("code")]

	var lang string
	switch {
	case strings.Contains(class, "language-ts"), strings.Contains(class, "language-typescript"):
		lang = "ts"
	// json before js: "language-json" contains "language-js" as a substring.
	case strings.Contains(class, "language-json"):
		lang = "json"
	case strings.Contains(class, "language-js"), strings.Contains(class, "language-javascript"):
		lang = "js"
	}

	code := html.UnescapeString(raw)
	code = normalizeLineEndings(code)
	code = strings.Trim(code, "\n")

	return "```" + lang + "\n" + code + "\n```\n\n"
}

// renderBlockquote flattens the quote's inner markup to blank-line-separated
// text and prefixes each line with "> " (bare ">" for blank lines).
func renderBlockquote(inner string) string {
	inner = html.UnescapeString(inner)
	inner = brRe.ReplaceAllString(inner, "\n")
	inner = paraJoinRe.ReplaceAllString(inner, "\n\n")
	inner = paraOpenRe.ReplaceAllString(inner, "")
	inner = paraCloseRe.ReplaceAllString(inner, "")
	inner = tagRe.ReplaceAllString(inner, "")
	inner = strings.TrimSpace(inner)

	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n") + "\n\n"
}

// convertHeadings rewrites <hN> elements as Markdown headings. Output level is
// N - base + 1, clamped to the Markdown heading scale.
func convertHeadings(fragment string, base int) string {
	for lvl := 1; lvl <= 6; lvl++ {
		re := headingRes[lvl-1]
		out := lvl - base + 1
		if out < 1 {
			out = 1
		}
		if out > 6 {
			out = 6
		}
		marker := strings.Repeat("#", out)
		fragment = re.ReplaceAllStringFunc(fragment, func(m string) string {
			title := StripTags(re.FindStringSubmatch(m)[1])
			return marker + " " + title + "\n\n"
		})
	}
	return fragment
}

// convertList renders <li> items as Markdown list lines. Items are flattened
// to plain text (nested lists are not recursed into), empty items are dropped,
// and ordered lists are renumbered from 1 regardless of source attributes.
func convertList(inner string, ordered bool) string {
	items := liRe.FindAllStringSubmatch(inner, -1)

	var lines []string
	for _, item := range items {
		text := StripTags(item[1])
		if text == "" {
			continue
		}
		if ordered {
			lines = append(lines, fmt.Sprintf("%d. %s", len(lines)+1, text))
		} else {
			lines = append(lines, "- "+text)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n\n"
}
