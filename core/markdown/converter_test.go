package markdown

import (
	"strings"
	"testing"
)

func TestConvertFragment_PlainText(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraph with inline noise tags",
			in:   `<p>Hello <span class="x">world</span></p>`,
			want: "Hello world\n",
		},
		{
			name: "entities unescaped",
			in:   `<p>a &amp; b &lt;c&gt;</p>`,
			want: "a & b <c>\n",
		},
		{
			name: "line break element",
			in:   `<p>one<br>two</p>`,
			want: "one\ntwo\n",
		},
		{
			name: "windows line endings normalized",
			in:   "<p>one</p>\r\n<p>two</p>",
			want: "one\n\ntwo\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ConvertFragment(tt.in, 1)
			if got != tt.want {
				t.Errorf("ConvertFragment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertFragment_HeadingClamping(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		in   string
		base int
		want string
	}{
		{"level equals base", `<h2 id="x">Title</h2>`, 2, "# Title\n"},
		{"one below base", `<h3 id="x">Sub</h3>`, 2, "## Sub\n"},
		{"clamped at top", `<h1>Up</h1>`, 3, "# Up\n"},
		{"clamped at bottom", `<h6>Deep</h6>`, 1, "###### Deep\n"},
		{"base one identity", `<h4>Four</h4>`, 1, "#### Four\n"},
		{"title tags stripped", `<h2>The <code>quick</code> fox</h2>`, 2, "# The quick fox\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ConvertFragment(tt.in, tt.base)
			if got != tt.want {
				t.Errorf("ConvertFragment(base=%d) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestConvertFragment_AnchorsVanish(t *testing.T) {
	c := New()

	in := `<p><a id="target-1"></a></p><p>Before <a id="target-2"></a>after</p>`
	got := c.ConvertFragment(in, 1)
	want := "Before after\n"
	if got != want {
		t.Errorf("ConvertFragment() = %q, want %q", got, want)
	}
}

func TestConvertFragment_TableRoundTrip(t *testing.T) {
	c := New()

	table := `<table><tr><td colspan="2">a</td></tr><tr><td>b</td><td>c</td></tr></table>`
	in := `<h2 id="s">Section</h2><p>before</p>` + table + `<p>after</p>`

	got := c.ConvertFragment(in, 2)

	// The table's inner markup survives byte-for-byte.
	if !strings.Contains(got, table) {
		t.Errorf("table markup was altered:\n%s", got)
	}
	if !strings.HasPrefix(got, "# Section\n\nbefore\n\n"+table) {
		t.Errorf("unexpected surrounding conversion:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n\nafter\n") {
		t.Errorf("text after table lost:\n%s", got)
	}
}

func TestConvertFragment_CodeBlocks(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "typescript class",
			in:   `<pre><code class="language-typescript">const x = 1;</code></pre>`,
			want: "```ts\nconst x = 1;\n```\n",
		},
		{
			name: "short ts class",
			in:   `<pre><code class="language-ts">let y = 2;</code></pre>`,
			want: "```ts\nlet y = 2;\n```\n",
		},
		{
			name: "json not shadowed by js",
			in:   `<pre><code class="language-json">{"a": 1}</code></pre>`,
			want: "```json\n{\"a\": 1}\n```\n",
		},
		{
			name: "javascript",
			in:   `<pre><code class="language-js">var z;</code></pre>`,
			want: "```js\nvar z;\n```\n",
		},
		{
			name: "unrecognized class yields no tag",
			in:   `<pre><code class="language-rust">fn main() {}</code></pre>`,
			want: "```\nfn main() {}\n```\n",
		},
		{
			name: "absent class yields no tag",
			in:   `<pre><code>plain code</code></pre>`,
			want: "```\nplain code\n```\n",
		},
		{
			name: "entities unescaped and blank edges trimmed",
			in:   "<pre><code class=\"language-ts\">\n\nfoo&lt;T&gt;();\n\n</code></pre>",
			want: "```ts\nfoo<T>();\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ConvertFragment(tt.in, 1)
			if got != tt.want {
				t.Errorf("ConvertFragment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertFragment_CodeContentNotReprocessed(t *testing.T) {
	c := New()

	// Emphasis-like and list-like markup inside a protected block must come
	// through untouched.
	in := `<pre><code class="language-ts">// *not emphasis*
const a = b * c;</code></pre>`
	got := c.ConvertFragment(in, 1)
	want := "```ts\n// *not emphasis*\nconst a = b * c;\n```\n"
	if got != want {
		t.Errorf("ConvertFragment() = %q, want %q", got, want)
	}
}

func TestConvertFragment_Blockquote(t *testing.T) {
	c := New()

	in := `<blockquote><p>first line</p><p>second <em>line</em></p></blockquote>`
	got := c.ConvertFragment(in, 1)
	want := "> first line\n>\n> second line\n"
	if got != want {
		t.Errorf("ConvertFragment() = %q, want %q", got, want)
	}
}

func TestConvertFragment_UnorderedList(t *testing.T) {
	c := New()

	in := `<ul><li>alpha</li><li><code>beta</code></li><li>   </li></ul>`
	got := c.ConvertFragment(in, 1)
	want := "- alpha\n- beta\n"
	if got != want {
		t.Errorf("ConvertFragment() = %q, want %q", got, want)
	}
}

func TestConvertFragment_OrderedListRenumbered(t *testing.T) {
	c := New()

	// Source numbering attributes are ignored; empty items are dropped and
	// do not consume a number.
	in := `<ol start="7"><li value="9">one</li><li>  </li><li>two</li><li>three</li></ol>`
	got := c.ConvertFragment(in, 1)
	want := "1. one\n2. two\n3. three\n"
	if got != want {
		t.Errorf("ConvertFragment() = %q, want %q", got, want)
	}
}

func TestConvertFragment_EmptyListContributesNothing(t *testing.T) {
	c := New()

	in := `<p>before</p><ul><li>  </li></ul><p>after</p>`
	got := c.ConvertFragment(in, 1)
	want := "before\n\nafter\n"
	if got != want {
		t.Errorf("ConvertFragment() = %q, want %q", got, want)
	}
}

func TestConvertFragment_NestedListFlattened(t *testing.T) {
	c := New()

	// Nested list markup inside an item is flattened to plain text, not
	// recursively converted.
	in := `<ul><li>outer <ul><li>inner</li></ul></li></ul>`
	got := c.ConvertFragment(in, 1)
	if !strings.Contains(got, "- outer inner") {
		t.Errorf("nested list should flatten to plain text, got %q", got)
	}
	if strings.Count(got, "- ") != 1 {
		t.Errorf("nested items should not become separate list lines, got %q", got)
	}
}

func TestConvertFragment_InlineFormatting(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"emphasis", `<p>an <em>italic</em> word</p>`, "an *italic* word\n"},
		{"strong", `<p>a <strong>bold</strong> word</p>`, "a **bold** word\n"},
		{"inline code", `<p>use <code>foo()</code> here</p>`, "use `foo()` here\n"},
		{"emphasis inner tags stripped", `<p><em>a <span>b</span></em></p>`, "*a b*\n"},
		{"code entities", `<p><code>a &lt; b</code></p>`, "`a < b`\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ConvertFragment(tt.in, 1)
			if got != tt.want {
				t.Errorf("ConvertFragment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertFragment_WhitespaceNormalization(t *testing.T) {
	c := New()

	in := "<p>one</p>\n\n\n\n\n<p>two   </p>\n\n\n"
	got := c.ConvertFragment(in, 1)
	want := "one\n\ntwo\n"
	if got != want {
		t.Errorf("ConvertFragment() = %q, want %q", got, want)
	}
	if strings.HasSuffix(got, "\n\n") {
		t.Error("output must end with exactly one newline")
	}
}

func TestConvertFragment_NoPlaceholderLeaks(t *testing.T) {
	c := New()

	// Tables and code blocks together: each family restores its own tokens.
	in := `<h2 id="s">S</h2>` +
		`<table><tr><td>t0</td></tr></table>` +
		`<pre><code class="language-ts">code0();</code></pre>` +
		`<table><tr><td>t1</td></tr></table>` +
		`<pre><code class="language-js">code1();</code></pre>`

	got := c.ConvertFragment(in, 2)

	if strings.Contains(got, "@@") {
		t.Fatalf("placeholder token leaked into output:\n%s", got)
	}
	for _, want := range []string{"<td>t0</td>", "<td>t1</td>", "```ts\ncode0();", "```js\ncode1();"} {
		if !strings.Contains(got, want) {
			t.Errorf("protected block missing from output: %q\n%s", want, got)
		}
	}
}

func TestConvertFragment_MalformedInputBestEffort(t *testing.T) {
	c := New()

	// Unclosed tags never raise; they are stripped with their text kept.
	in := `<p>ok <strong>still bold`
	got := c.ConvertFragment(in, 1)
	if !strings.Contains(got, "ok") || !strings.Contains(got, "still bold") {
		t.Errorf("visible text should survive malformed markup, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`<b>bold</b> text`, "bold text"},
		{`one<br>two`, "one\ntwo"},
		{`a &amp; b`, "a & b"},
		{`  <i> padded </i>  `, "padded"},
	}
	for _, tt := range tests {
		if got := StripTags(tt.in); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTidyWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\n\n\n\nb", "a\n\nb\n"},
		{"a   \nb", "a\nb\n"},
		{"\n\na\n\n", "a\n"},
		{"a", "a\n"},
	}
	for _, tt := range tests {
		if got := TidyWhitespace(tt.in); got != tt.want {
			t.Errorf("TidyWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
