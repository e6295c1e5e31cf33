package terminal

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Draw renders a frame: the page label above the token, centered both
// ways, token text in bold.
func (s *Session) Draw(page int, text string) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	w, h := s.screen.Size()
	s.screen.Clear()

	lines := Layout(page, text, w, h)
	top := (h - len(lines)) / 2
	if top < 0 {
		top = 0
	}
	for i, line := range lines {
		style := s.tokenStyle
		if i == 0 {
			style = s.baseStyle
		}
		s.drawCentered(top+i, w, line, style)
	}

	s.screen.Show()
	return nil
}

func (s *Session) drawCentered(y, width int, line string, style tcell.Style) {
	x := (width - runewidth.StringWidth(line)) / 2
	if x < 0 {
		x = 0
	}
	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		s.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
}

// Layout returns the frame's lines for a width x height viewport: the
// page label followed by text word-wrapped to width. Text that does not
// fit the remaining height is cut with an ellipsis.
func Layout(page int, text string, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	label := runewidth.Truncate(fmt.Sprintf("Page Number: %d", page), width, ellipsis)
	lines := []string{label}

	room := height - 1
	if room <= 0 {
		return lines
	}

	content := wrap(text, width)
	if len(content) > room {
		content = content[:room]
		last := content[room-1]
		if runewidth.StringWidth(last)+runewidth.StringWidth(ellipsis) > width {
			last = runewidth.Truncate(last, width-runewidth.StringWidth(ellipsis), "")
		}
		content[room-1] = last + ellipsis
	}
	return append(lines, content...)
}

// wrap greedily packs words into lines no wider than width. A single
// word wider than width is truncated.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	curWidth := 0

	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if ww > width {
			word = runewidth.Truncate(word, width, ellipsis)
			ww = runewidth.StringWidth(word)
		}
		if curWidth > 0 && curWidth+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += ww
	}
	if curWidth > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
