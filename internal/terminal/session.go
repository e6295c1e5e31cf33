// Package terminal owns the interactive screen: alternate buffer and raw
// input for the life of a Session, frame drawing, and cancel-key polling.
package terminal

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgallion1/flashread/internal/playback"
	"github.com/gdamore/tcell/v2"
)

var (
	// ErrInputClosed is returned by Poll once the input backend has stopped.
	ErrInputClosed = errors.New("input backend closed")
	// ErrSessionClosed is returned by Draw after Close.
	ErrSessionClosed = errors.New("terminal session closed")
)

// DefaultCancelKey ends playback.
const DefaultCancelKey = 'q'

// Options configures a Session.
type Options struct {
	CancelKey rune
}

// Session is an acquired terminal. Close must be called on every exit
// path; it is safe to call more than once.
type Session struct {
	screen    tcell.Screen
	events    chan tcell.Event
	quit      chan struct{}
	cancelKey rune
	closeOnce sync.Once
	closed    atomic.Bool

	baseStyle  tcell.Style
	tokenStyle tcell.Style
}

// Enter switches the controlling terminal to the alternate screen with
// raw input.
func Enter(opts Options) (*Session, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewSession(screen, opts)
}

// NewSession initialises screen and takes ownership of it until Close.
func NewSession(screen tcell.Screen, opts Options) (*Session, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	if opts.CancelKey == 0 {
		opts.CancelKey = DefaultCancelKey
	}
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue)
	s := &Session{
		screen:     screen,
		events:     make(chan tcell.Event, 16),
		quit:       make(chan struct{}),
		cancelKey:  opts.CancelKey,
		baseStyle:  base,
		tokenStyle: base.Bold(true),
	}

	screen.SetStyle(base)
	screen.HideCursor()
	screen.Clear()
	screen.Show()

	go screen.ChannelEvents(s.events, s.quit)
	return s, nil
}

// Close leaves the alternate screen and restores the input mode.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.quit)
		s.screen.Fini()
	})
}

// Poll waits up to timeout for the cancel key. Every other event is
// discarded.
func (s *Session) Poll(timeout time.Duration) (playback.Signal, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				return playback.NoSignal, ErrInputClosed
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyRune && ev.Rune() == s.cancelKey {
					return playback.CancelSignal, nil
				}
			case *tcell.EventError:
				return playback.NoSignal, fmt.Errorf("input backend: %w", ev)
			}
		case <-timer.C:
			return playback.NoSignal, nil
		}
	}
}
