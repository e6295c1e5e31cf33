package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/flashread/internal/pagetree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*pagetree.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	tree := pagetree.New(titleFromFilename(filename))
	w := newSectionWriter(tree)

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		writeMarkdownBlock(w, n, src)
	}

	return tree, nil
}

func writeMarkdownBlock(w *sectionWriter, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading:
		w.heading(node.Level, extractText(node, src))
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		// Code keeps its line structure.
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			w.line(string(seg.Value(src)))
		}
	case *ast.List, *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			writeMarkdownBlock(w, c, src)
		}
	case *ast.ListItem:
		w.paragraph(extractText(node, src))
	case *ast.ThematicBreak, *ast.HTMLBlock:
	default:
		w.paragraph(extractText(n, src))
	}
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			// Recurse for nested inlines and child blocks.
			if buf.Len() > 0 && c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
