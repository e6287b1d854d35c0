// Package markdown turns post bodies into HTML once, at load time.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown and MDX bodies to HTML. It is safe for
// concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GitHub-flavoured markdown and auto heading IDs.
// Raw HTML and JSX blocks are omitted from the output.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithXHTML(),
			),
		),
	}
}

// Render converts a markdown body to HTML. When mdx is set, top-level ESM
// import/export statements are dropped first.
func (r *Renderer) Render(body []byte, mdx bool) (string, error) {
	if mdx {
		body = stripESM(body)
	}
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// stripESM removes top-level MDX import/export statements outside fenced
// code. A statement runs until its brackets balance, or until a blank line,
// which ends an ESM block in MDX.
func stripESM(body []byte) []byte {
	lines := strings.SplitAfter(string(body), "\n")
	var b strings.Builder
	b.Grow(len(body))
	fenced := false
	inESM := false
	depth := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inESM {
			if trimmed == "" {
				inESM = false
				b.WriteString(line)
				continue
			}
			depth += bracketDelta(line)
			if depth <= 0 {
				inESM = false
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
		}
		if !fenced && (strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ")) {
			depth = bracketDelta(line)
			inESM = depth > 0
			continue
		}
		b.WriteString(line)
	}
	return []byte(b.String())
}

// bracketDelta returns opened minus closed brackets on line, ignoring any
// inside quoted strings.
func bracketDelta(line string) int {
	n := 0
	var quote rune
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == '{' || r == '(' || r == '[':
			n++
		case r == '}' || r == ')' || r == ']':
			n--
		}
	}
	return n
}
