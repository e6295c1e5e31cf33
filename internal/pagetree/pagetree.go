package pagetree

import "sort"

// Tree is an extracted document: pages in ascending page-number order,
// each holding its lines in document order.
type Tree struct {
	Title string // Document title (from metadata or filename)
	pages []Page
}

// Page is one numbered page of raw text lines.
type Page struct {
	Number int      // 1-based page number
	Lines  []string // Raw lines (may be empty strings)
}

// New returns an empty tree.
func New(title string) *Tree {
	return &Tree{Title: title}
}

// Add appends lines to page number n, creating the page if needed.
// Pages are kept sorted by number regardless of insertion order.
func (t *Tree) Add(n int, lines ...string) {
	i := sort.Search(len(t.pages), func(i int) bool { return t.pages[i].Number >= n })
	if i < len(t.pages) && t.pages[i].Number == n {
		t.pages[i].Lines = append(t.pages[i].Lines, lines...)
		return
	}
	page := Page{Number: n, Lines: append([]string(nil), lines...)}
	t.pages = append(t.pages, Page{})
	copy(t.pages[i+1:], t.pages[i:])
	t.pages[i] = page
}

// Pages returns the pages in ascending order. Callers must not modify
// the returned slice.
func (t *Tree) Pages() []Page {
	if t == nil {
		return nil
	}
	return t.pages
}

// Len returns the number of pages.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.pages)
}

// LineCount returns the total number of lines across all pages.
func (t *Tree) LineCount() int {
	n := 0
	for _, p := range t.Pages() {
		n += len(p.Lines)
	}
	return n
}
