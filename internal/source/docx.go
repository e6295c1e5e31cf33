package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/flashread/internal/pagetree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Headings 1 and 2 start new pages.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*pagetree.Tree, error) {
	ra, size, err := readerAt(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(ra, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	tree := pagetree.New(titleFromFilename(filename))
	w := newSectionWriter(tree)

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		text := docxParagraphText(para)
		if level := docxHeadingLevel(para); level > 0 {
			w.heading(level, text)
		} else {
			w.line(text)
		}
	}

	return tree, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	switch style {
	case "title", "heading1":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	case "heading4":
		return 4
	case "heading5":
		return 5
	case "heading6":
		return 6
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
