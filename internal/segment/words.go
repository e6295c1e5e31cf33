package segment

import "strings"

// CountWords returns the number of whitespace-separated words in text,
// never less than 1. Pacing relies on the floor so that no token is
// displayed for zero time.
func CountWords(text string) int {
	n := len(strings.Fields(text))
	if n < 1 {
		return 1
	}
	return n
}
