package segment

import (
	"iter"

	"github.com/dgallion1/flashread/internal/pagetree"
)

// Cursor is a position in the token stream.
type Cursor struct {
	PageIndex int // Index into the tree's pages
	Page      int // Page number
	Line      int // Line index within the page
	Token     int // Token index within the line
}

// Item is one emitted token with the page it belongs to.
type Item struct {
	Page   int
	Token  Token
	Cursor Cursor
}

// Segmenter produces token streams over a tree. It is safe to start any
// number of streams; each begins at the first page after the skip offset.
type Segmenter struct {
	tree *pagetree.Tree
	mode Mode
	skip int
}

// New returns a segmenter that skips the first skipPages pages.
func New(tree *pagetree.Tree, mode Mode, skipPages int) *Segmenter {
	if skipPages < 0 {
		skipPages = 0
	}
	return &Segmenter{tree: tree, mode: mode, skip: skipPages}
}

// Mode returns the segmentation mode.
func (s *Segmenter) Mode() Mode {
	return s.mode
}

// Stream starts a fresh traversal.
func (s *Segmenter) Stream() *Stream {
	return &Stream{
		pages:   s.tree.Pages(),
		mode:    s.mode,
		pageIdx: s.skip,
		line:    -1,
	}
}

// All returns the full sequence of (page number, token) pairs. Every call
// to the returned function restarts from the beginning.
func (s *Segmenter) All() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		st := s.Stream()
		for {
			item, ok := st.Next()
			if !ok || !yield(item.Page, item.Token) {
				return
			}
		}
	}
}

// Stream is a single pull-based traversal. It is not safe for
// concurrent use.
type Stream struct {
	pages []pagetree.Page
	mode  Mode

	pageIdx int
	line    int
	pending []Token
	next    int
	cursor  Cursor
}

// Next returns the next token, or false once the stream is exhausted.
func (st *Stream) Next() (Item, bool) {
	for st.next >= len(st.pending) {
		if !st.advanceLine() {
			return Item{}, false
		}
	}

	page := st.pages[st.pageIdx].Number
	st.cursor = Cursor{
		PageIndex: st.pageIdx,
		Page:      page,
		Line:      st.line,
		Token:     st.next,
	}
	tok := st.pending[st.next]
	st.next++
	return Item{Page: page, Token: tok, Cursor: st.cursor}, true
}

// Cursor returns the position of the most recently emitted token.
func (st *Stream) Cursor() Cursor {
	return st.cursor
}

// advanceLine loads the tokens of the next line, crossing page
// boundaries as needed.
func (st *Stream) advanceLine() bool {
	st.line++
	for st.pageIdx < len(st.pages) {
		if lines := st.pages[st.pageIdx].Lines; st.line < len(lines) {
			st.pending = SplitLine(lines[st.line], st.mode)
			st.next = 0
			return true
		}
		st.pageIdx++
		st.line = 0
	}
	st.pending, st.next = nil, 0
	return false
}
