// Package segment turns a page tree into an ordered stream of display
// tokens, one word or one phrase at a time.
package segment

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects how lines are split into tokens.
type Mode int

const (
	// Word splits on whitespace runs.
	Word Mode = iota
	// Phrase splits after sentence terminators, keeping the terminator.
	Phrase
)

func (m Mode) String() string {
	switch m {
	case Word:
		return "word"
	case Phrase:
		return "phrase"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "word" or "phrase" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word":
		return Word, nil
	case "phrase":
		return Phrase, nil
	}
	return 0, fmt.Errorf("unknown segmentation mode %q (want word or phrase)", s)
}

// Token is one display unit.
type Token struct {
	Text      string
	WordCount int // Whitespace-separated words in Text, at least 1
}

// NewToken builds a token and derives its word count.
func NewToken(text string) Token {
	return Token{Text: text, WordCount: CountWords(text)}
}

// SplitLine splits one line into tokens. It never returns empty or
// whitespace-only tokens.
func SplitLine(line string, mode Mode) []Token {
	var parts []string
	switch mode {
	case Phrase:
		parts = splitSentences(line)
	default:
		parts = strings.Fields(line)
	}
	if len(parts) == 0 {
		return nil
	}
	tokens := make([]Token, 0, len(parts))
	for _, p := range parts {
		tokens = append(tokens, NewToken(p))
	}
	return tokens
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// splitSentences splits after each run of terminators that is followed by
// whitespace or the end of the line. Fragments are byte slices of text, so
// phrase mode shows the same bytes as word mode. Splitting only at word
// boundaries, and keeping the text after the last terminator as a final
// fragment, keeps the phrase-mode word count of a line equal to its
// word-mode token count ("e.g." and "..." stay inside their fragment).
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	flush := func(end int) {
		if s := strings.TrimSpace(text[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i, r := range text {
		if !isTerminator(r) {
			continue
		}
		end := i + utf8.RuneLen(r)
		if end == len(text) {
			break
		}
		if next, _ := utf8.DecodeRuneInString(text[end:]); unicode.IsSpace(next) {
			flush(end)
		}
	}
	flush(len(text))

	return sentences
}
