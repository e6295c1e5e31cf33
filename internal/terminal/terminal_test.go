package terminal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/flashread/internal/playback"
	"github.com/gdamore/tcell/v2"
)

func newSimSession(t *testing.T, w, h int) (*Session, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewSession(sim, Options{})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(s.Close)
	return s, sim
}

// row returns the text on row y of the simulated screen and the style of
// its first non-blank cell.
func row(sim tcell.SimulationScreen, y int) (string, tcell.Style) {
	cells, w, _ := sim.GetContents()
	var b strings.Builder
	var style tcell.Style
	found := false
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		r := ' '
		if len(c.Runes) > 0 {
			r = c.Runes[0]
		}
		if r != ' ' && !found {
			style = c.Style
			found = true
		}
		b.WriteRune(r)
	}
	return b.String(), style
}

func TestDraw_CentersLabelAndToken(t *testing.T) {
	s, sim := newSimSession(t, 30, 6)
	if err := s.Draw(7, "Hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two lines in six rows start at row 2.
	label, labelStyle := row(sim, 2)
	if strings.TrimSpace(label) != "Page Number: 7" {
		t.Errorf("expected label row, got %q", label)
	}
	token, tokenStyle := row(sim, 3)
	if strings.TrimSpace(token) != "Hello" {
		t.Errorf("expected token row, got %q", token)
	}
	if x := strings.Index(token, "Hello"); x != (30-5)/2 {
		t.Errorf("expected token at column %d, got %d", (30-5)/2, x)
	}

	fg, bg, attrs := tokenStyle.Decompose()
	if fg != tcell.ColorWhite || bg != tcell.ColorBlue {
		t.Errorf("expected white on blue, got fg=%v bg=%v", fg, bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("expected token to be bold")
	}
	if _, _, attrs := labelStyle.Decompose(); attrs&tcell.AttrBold != 0 {
		t.Error("expected label not to be bold")
	}
}

func TestDraw_AfterCloseFails(t *testing.T) {
	s, _ := newSimSession(t, 20, 5)
	s.Close()
	s.Close() // idempotent
	if err := s.Draw(1, "x"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestPoll_CancelKey(t *testing.T) {
	s, sim := newSimSession(t, 20, 5)
	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	sig, err := s.Poll(time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != playback.CancelSignal {
		t.Errorf("expected CancelSignal, got %v", sig)
	}
}

func TestPoll_OtherKeysIgnored(t *testing.T) {
	s, sim := newSimSession(t, 20, 5)
	sim.InjectKey(tcell.KeyRune, 'Q', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)

	start := time.Now()
	sig, err := s.Poll(30 * time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != playback.NoSignal {
		t.Errorf("expected NoSignal, got %v", sig)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("poll overran its timeout: %v", elapsed)
	}
}

func TestPoll_CustomCancelKey(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := NewSession(sim, Options{CancelKey: 'x'})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	defer s.Close()

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sig, err := s.Poll(time.Second)
	if err != nil || sig != playback.CancelSignal {
		t.Errorf("expected CancelSignal on custom key, got %v, %v", sig, err)
	}
}

func TestPoll_ClosedBackend(t *testing.T) {
	s, _ := newSimSession(t, 20, 5)
	s.Close()

	_, err := s.Poll(2 * time.Second)
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}
}

func TestPoll_BackendError(t *testing.T) {
	s, sim := newSimSession(t, 20, 5)
	if err := sim.PostEvent(tcell.NewEventError(errors.New("tty gone"))); err != nil {
		t.Fatalf("post event: %v", err)
	}

	sig, err := s.Poll(time.Second)
	if err == nil {
		t.Fatal("expected backend error, got nil")
	}
	var evErr *tcell.EventError
	if !errors.As(err, &evErr) {
		t.Errorf("expected error wrapping *tcell.EventError, got %T", err)
	}
	if !strings.Contains(err.Error(), "tty gone") {
		t.Errorf("expected message to carry the backend error, got %q", err.Error())
	}
	if sig != playback.NoSignal {
		t.Errorf("expected NoSignal, got %v", sig)
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name string
		text string
		w, h int
		want []string
	}{
		{"fits", "Hello world.", 40, 10, []string{"Page Number: 3", "Hello world."}},
		{"wraps", "one two three four", 9, 10, []string{"Page Num…", "one two", "three", "four"}},
		{"trimmed", "one two three four", 9, 3, []string{"Page Num…", "one two", "three…"}},
		{"long word", "incomprehensibilities", 8, 4, []string{"Page Nu…", "incompr…"}},
		{"label only", "word", 20, 1, []string{"Page Number: 3"}},
		{"no room", "word", 0, 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Layout(3, tt.text, tt.w, tt.h)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line[%d]: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
