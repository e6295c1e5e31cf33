package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/flashread/internal/pagetree"
)

// TextParser handles plain text files. Form feeds separate pages.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*pagetree.Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	tree := pagetree.New(titleFromFilename(filename))
	page := 1

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		parts := strings.Split(line, "\f")
		for i, part := range parts {
			if i > 0 {
				page++
			}
			// A form feed at a line edge only separates pages.
			if part == "" && len(parts) > 1 {
				continue
			}
			tree.Add(page, part)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tree, nil
}
