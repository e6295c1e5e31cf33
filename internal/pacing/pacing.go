// Package pacing computes how long each token stays on screen.
package pacing

import (
	"time"

	"github.com/dgallion1/flashread/internal/segment"
)

// DefaultWPM is the reading rate used when none is configured.
const DefaultWPM = 300

// Controller maps tokens to display durations. A token gets one base
// unit per word, so the effective words-per-minute rate is the same in
// word and phrase mode.
type Controller struct {
	base time.Duration
}

// New returns a controller with the given single-word duration.
func New(base time.Duration) Controller {
	if base <= 0 {
		return FromWPM(DefaultWPM)
	}
	return Controller{base: base}
}

// FromWPM derives the base duration from a words-per-minute target.
func FromWPM(wpm int) Controller {
	if wpm <= 0 {
		wpm = DefaultWPM
	}
	return Controller{base: time.Minute / time.Duration(wpm)}
}

// Base returns the duration of a single-word token.
func (c Controller) Base() time.Duration {
	return c.base
}

// WPM returns the configured rate.
func (c Controller) WPM() float64 {
	if c.base <= 0 {
		return 0
	}
	return float64(time.Minute) / float64(c.base)
}

// Duration returns how long tok is displayed.
func (c Controller) Duration(tok segment.Token) time.Duration {
	n := tok.WordCount
	if n < 1 {
		n = 1
	}
	return c.base * time.Duration(n)
}
