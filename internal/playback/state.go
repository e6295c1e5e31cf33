package playback

import (
	"time"

	"github.com/dgallion1/flashread/internal/segment"
)

// State is the playback state machine's state.
type State string

const (
	StateRunning   State = "running"
	StateCancelled State = "cancelled"
	StateFinished  State = "finished"
)

// Terminal reports whether s ends a session.
func (s State) Terminal() bool {
	return s == StateCancelled || s == StateFinished
}

// Signal is the result of an input poll.
type Signal int

const (
	NoSignal Signal = iota
	CancelSignal
)

// Summary describes a completed (or aborted) session.
type Summary struct {
	State    State
	Tokens   int            // Tokens rendered
	Words    int            // Sum of rendered tokens' word counts
	LastPage int            // Page of the last rendered token (0 if none)
	Cursor   segment.Cursor // Position of the last rendered token
	Elapsed  time.Duration
}

// EffectiveWPM is the achieved reading rate over the session.
func (s Summary) EffectiveWPM() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Words) / s.Elapsed.Minutes()
}
