package source

import (
	"strings"

	"github.com/dgallion1/flashread/internal/pagetree"
)

// maxSectionLevel is the deepest heading that starts a new page in
// formats without physical pages.
const maxSectionLevel = 2

// sectionWriter lays out heading-structured documents as pages: every
// heading at or above maxSectionLevel opens a new page once the current
// page has content.
type sectionWriter struct {
	tree    *pagetree.Tree
	page    int
	content bool
}

func newSectionWriter(tree *pagetree.Tree) *sectionWriter {
	return &sectionWriter{tree: tree, page: 1}
}

func (w *sectionWriter) heading(level int, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if level <= maxSectionLevel && w.content {
		w.page++
	}
	w.line(text)
}

func (w *sectionWriter) line(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	w.tree.Add(w.page, text)
	w.content = true
}

// paragraph writes text as one line with internal newlines folded.
func (w *sectionWriter) paragraph(text string) {
	w.line(strings.Join(strings.Fields(text), " "))
}
