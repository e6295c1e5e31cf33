package source

import (
	"strings"
	"testing"
)

func TestTextParser_SinglePage(t *testing.T) {
	input := "First line.\nSecond line.\n\nFourth line."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", tree.Title)
	}
	if tree.Len() != 1 {
		t.Fatalf("expected 1 page, got %d", tree.Len())
	}

	want := []string{"First line.", "Second line.", "", "Fourth line."}
	lines := tree.Pages()[0].Lines
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d]: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestTextParser_FormFeedSplitsPages(t *testing.T) {
	input := "Page one.\n\fPage two.\nStill two.\fPage three."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "book.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Len() != 3 {
		t.Fatalf("expected 3 pages, got %d", tree.Len())
	}

	pages := tree.Pages()
	if pages[0].Number != 1 || pages[1].Number != 2 || pages[2].Number != 3 {
		t.Errorf("expected pages 1,2,3, got %d,%d,%d", pages[0].Number, pages[1].Number, pages[2].Number)
	}
	if len(pages[1].Lines) != 2 || pages[1].Lines[1] != "Still two." {
		t.Errorf("unexpected page 2 lines: %q", pages[1].Lines)
	}
	if pages[2].Lines[0] != "Page three." {
		t.Errorf("expected %q, got %q", "Page three.", pages[2].Lines[0])
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", tree.Title)
	}
	if tree.Len() != 0 {
		t.Errorf("expected 0 pages for empty input, got %d", tree.Len())
	}
}

func TestTextParser_CRLF(t *testing.T) {
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader("Hello world\r\nBye\r\n"), "dos.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := tree.Pages()[0].Lines
	if lines[0] != "Hello world" || lines[1] != "Bye" {
		t.Errorf("expected carriage returns stripped, got %q", lines)
	}
}
