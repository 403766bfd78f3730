// Package markdown renders redirect descriptions. Descriptions are stored as
// markdown source; HTML is produced for the page body and plain text for meta
// tags and admin search.
package markdown

import (
	"bytes"
	"html"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// MetaDescriptionLength is the usual cut-off for description meta tags.
const MetaDescriptionLength = 160

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ToHTML converts markdown to HTML. Raw HTML in the source is dropped by the
// renderer.
func ToHTML(source string) template.HTML {
	src := strings.TrimSpace(source)
	if src == "" {
		return ""
	}

	var out bytes.Buffer
	if err := engine.Convert([]byte(src), &out); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(out.String())
}

// PlainText strips markdown and HTML markup and collapses whitespace.
func PlainText(source string) string {
	src := []byte(source)
	doc := engine.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.Label(src))
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.WriteString(htmlTagPattern.ReplaceAllString(string(seg.Value(src)), " "))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(html.UnescapeString(b.String())), " ")
}

// Truncate shortens s to at most max runes, cutting at a word boundary when
// one is available and appending "...".
func Truncate(s string, max int) string {
	if max <= 3 || utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:max-3])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}

// MetaDescription is the plain-text, truncated form used in meta tags.
func MetaDescription(source string) string {
	return Truncate(PlainText(source), MetaDescriptionLength)
}
