package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// ErrMarkdown indicates goldmark failed to render a fragment.
var ErrMarkdown = errors.New("markdown rendering failed")

// InlineRenderer turns the short Markdown strings found in card data
// (abstracts, list items) into HTML fragments.
type InlineRenderer struct {
	md goldmark.Markdown
}

// NewInlineRenderer creates a renderer with the GFM inline extensions.
// Raw HTML in the source is escaped, not passed through.
func NewInlineRenderer() *InlineRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &InlineRenderer{md: md}
}

// Inline renders s and removes the paragraph wrapper goldmark adds around a
// single paragraph. Multi-paragraph input keeps its <p> tags.
func (r *InlineRenderer) Inline(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdown, err)
	}

	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") &&
		strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}

// LinkKind distinguishes links from embedded images.
type LinkKind int

const (
	KindLink LinkKind = iota
	KindImage
)

// Link is one destination found in a Markdown body.
type Link struct {
	Kind        LinkKind
	Destination string
	Line        int // 1-based, 0 when unknown
}

// ExtractLinks walks the goldmark AST of source and returns every inline
// link and image destination in document order. Autolinks are skipped.
func ExtractLinks(source []byte) []Link {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var links []Link
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			links = append(links, Link{Kind: KindLink, Destination: string(node.Destination), Line: lineOf(node, source)})
		case *ast.Image:
			links = append(links, Link{Kind: KindImage, Destination: string(node.Destination), Line: lineOf(node, source)})
		}
		return ast.WalkContinue, nil
	})
	return links
}

// lineOf finds the line of the first text segment below n.
func lineOf(n ast.Node, source []byte) int {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			return bytes.Count(source[:t.Segment.Start], []byte("\n")) + 1
		}
	}
	// Fall back to the enclosing block.
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == ast.TypeBlock && p.Lines().Len() > 0 {
			return bytes.Count(source[:p.Lines().At(0).Start], []byte("\n")) + 1
		}
	}
	return 0
}
