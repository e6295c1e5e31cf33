package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/flashread/internal/config"
	"github.com/dgallion1/flashread/internal/pacing"
	"github.com/dgallion1/flashread/internal/playback"
	"github.com/dgallion1/flashread/internal/segment"
	"github.com/dgallion1/flashread/internal/source"
	"github.com/dgallion1/flashread/internal/terminal"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "flashread: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "flashread: invalid configuration: %v\n", err)
		return 2
	}

	log, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "flashread: open log: %v\n", err)
		return 1
	}
	defer closeLog()

	log.Info("configuration loaded",
		"path", cfg.Path,
		"mode", cfg.Mode,
		"wpm", cfg.WPM,
		"skip_pages", cfg.SkipPages,
		"poll_interval", cfg.PollInterval.String(),
	)

	tree, err := source.Extract(cfg.Path, source.Options{
		MaxBytes:             cfg.MaxFileBytes,
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		log.Error("extraction failed", "path", cfg.Path, "error", err)
		fmt.Fprintf(stderr, "flashread: text source: %v\n", err)
		return 1
	}
	log.Info("document extracted",
		"path", cfg.Path,
		"title", tree.Title,
		"pages", tree.Len(),
		"lines", tree.LineCount(),
	)

	seg := segment.New(tree, cfg.SegmentMode(), cfg.SkipPages)
	pacer := pacing.FromWPM(cfg.WPM)

	if cfg.Dump {
		if err := dump(stdout, seg, pacer); err != nil {
			fmt.Fprintf(stderr, "flashread: dump: %v\n", err)
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := terminal.Enter(terminal.Options{CancelKey: cfg.CancelRune()})
	if err != nil {
		log.Error("terminal setup failed", "error", err)
		fmt.Fprintf(stderr, "flashread: terminal session: %v\n", err)
		return 1
	}

	log = log.With("mode", seg.Mode().String(), "wpm", cfg.WPM)
	log.Info("playback starting", "title", tree.Title)

	sum, err := play(ctx, sess, seg, pacer, cfg.PollInterval, log)
	if err != nil {
		fmt.Fprintf(stderr, "flashread: terminal: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "%s: %d words in %s (%.0f wpm), stopped on page %d\n",
		sum.State, sum.Words, sum.Elapsed.Round(time.Second), sum.EffectiveWPM(), sum.LastPage)
	return 0
}

// session is the terminal as play sees it; *terminal.Session satisfies it.
type session interface {
	playback.Renderer
	playback.Poller
	Close()
}

// play runs one session. The terminal is released before play returns,
// including when playback panics, so callers can report on a restored
// screen.
func play(ctx context.Context, sess session, seg *segment.Segmenter, pacer pacing.Controller, poll time.Duration, log *slog.Logger) (playback.Summary, error) {
	defer sess.Close()

	player := playback.NewPlayer(sess, sess, pacer, playback.Options{
		PollInterval: poll,
		Log:          log,
	})
	return player.Run(ctx, seg.Stream())
}

// dump writes the token stream as page, duration and text columns.
func dump(w io.Writer, seg *segment.Segmenter, pacer pacing.Controller) error {
	bw := bufio.NewWriter(w)
	for page, tok := range seg.All() {
		fmt.Fprintf(bw, "%d\t%s\t%s\n", page, pacer.Duration(tok), tok.Text)
	}
	return bw.Flush()
}

// openLog returns a JSON logger writing to path, or a discarding logger
// when path is empty. The terminal owns stdout during playback.
func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}
