// Package playback drives the render, poll and sleep cycle that shows a
// token stream one unit at a time.
package playback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/flashread/internal/pacing"
	"github.com/dgallion1/flashread/internal/segment"
)

// DefaultPollInterval bounds each input poll.
const DefaultPollInterval = 50 * time.Millisecond

// Renderer draws one frame.
type Renderer interface {
	Draw(page int, text string) error
}

// Poller reports whether the user asked to cancel. Poll must return
// within timeout.
type Poller interface {
	Poll(timeout time.Duration) (Signal, error)
}

// Clock is the time source and sleeper used between tokens.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Options configures a Player. Zero values select defaults.
type Options struct {
	PollInterval time.Duration
	Clock        Clock
	Log          *slog.Logger
}

// Player runs playback sessions. A Player runs one session at a time.
type Player struct {
	renderer     Renderer
	poller       Poller
	pacer        pacing.Controller
	pollInterval time.Duration
	clock        Clock
	log          *slog.Logger
}

func NewPlayer(r Renderer, in Poller, pacer pacing.Controller, opts Options) *Player {
	p := &Player{
		renderer:     r,
		poller:       in,
		pacer:        pacer,
		pollInterval: opts.PollInterval,
		clock:        opts.Clock,
		log:          opts.Log,
	}
	if p.pollInterval <= 0 {
		p.pollInterval = DefaultPollInterval
	}
	if p.clock == nil {
		p.clock = realClock{}
	}
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}
	return p
}

// Run plays st until it is exhausted (StateFinished), the user cancels
// or ctx is done (StateCancelled). Each token is rendered once, polled
// once, and then the rest of its duration is slept off. A render or poll
// failure aborts the session, returning the summary so far with
// StateRunning.
func (p *Player) Run(ctx context.Context, st *segment.Stream) (Summary, error) {
	sum := Summary{State: StateRunning}
	start := p.clock.Now()

	for !sum.State.Terminal() {
		if ctx.Err() != nil {
			sum.State = StateCancelled
			break
		}

		item, ok := st.Next()
		if !ok {
			sum.State = StateFinished
			break
		}

		if err := p.renderer.Draw(item.Page, item.Token.Text); err != nil {
			sum.Elapsed = p.clock.Now().Sub(start)
			p.log.Error("render failed", "page", item.Page, "line", st.Cursor().Line, "error", err)
			return sum, fmt.Errorf("render page %d: %w", item.Page, err)
		}
		sum.Tokens++
		sum.Words += item.Token.WordCount
		sum.LastPage = item.Page
		sum.Cursor = st.Cursor()

		d := p.pacer.Duration(item.Token)
		slice := min(p.pollInterval, d)

		sig, err := p.poller.Poll(slice)
		if err != nil {
			sum.Elapsed = p.clock.Now().Sub(start)
			p.log.Error("input poll failed", "page", item.Page, "error", err)
			return sum, fmt.Errorf("poll input: %w", err)
		}
		if sig == CancelSignal {
			sum.State = StateCancelled
			break
		}

		// The poll already consumed part of the token's time.
		if rest := d - slice; rest > 0 {
			p.clock.Sleep(rest)
		}
	}

	sum.Elapsed = p.clock.Now().Sub(start)
	p.log.Info("playback ended",
		"state", sum.State,
		"tokens", sum.Tokens,
		"words", sum.Words,
		"last_page", sum.LastPage,
		"last_line", sum.Cursor.Line,
		"elapsed_ms", sum.Elapsed.Milliseconds(),
		"effective_wpm", int(sum.EffectiveWPM()),
	)
	return sum, nil
}
