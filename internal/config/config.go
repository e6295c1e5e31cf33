package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/flashread/internal/segment"
	"github.com/joho/godotenv"
)

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage: flashread [flags] <file>")

type Config struct {
	// Document to read (positional argument).
	Path string

	// Playback
	Mode         string
	WPM          int
	SkipPages    int
	PollInterval time.Duration
	CancelKey    string

	// Extraction
	MaxFileBytes         int64
	PDFFallbackPdftotext bool

	// Output
	LogFile string
	Dump    bool
}

// Load reads configuration from the environment, after merging a .env
// file (FLASHREAD_ENV_FILE, default ".env") when one exists. Variables
// already set in the environment win over the file.
func Load() (Config, error) {
	envFile := envOr("FLASHREAD_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		Mode:         envOr("FLASHREAD_MODE", "phrase"),
		WPM:          envInt("FLASHREAD_WPM", 300),
		SkipPages:    envInt("FLASHREAD_SKIP_PAGES", 0),
		PollInterval: envDuration("FLASHREAD_POLL_INTERVAL", 50*time.Millisecond),
		CancelKey:    envOr("FLASHREAD_CANCEL_KEY", "q"),

		MaxFileBytes:         envInt64("FLASHREAD_MAX_FILE_BYTES", 52428800), // 50MB
		PDFFallbackPdftotext: envBool("FLASHREAD_PDF_FALLBACK_PDFTOTEXT", true),

		LogFile: os.Getenv("FLASHREAD_LOG_FILE"),
	}

	if cfg.WPM <= 0 {
		cfg.WPM = 300
	}
	if cfg.SkipPages < 0 {
		cfg.SkipPages = 0
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 50 * time.Millisecond
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = 52428800
	}

	return cfg, nil
}

// Parse loads the environment and applies command-line flags on top.
// Flags may appear before or after the file argument.
func Parse(args []string, output io.Writer) (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}

	flags := flag.NewFlagSet("flashread", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&cfg.Mode, "mode", cfg.Mode, "segmentation mode: word or phrase")
	flags.IntVar(&cfg.WPM, "wpm", cfg.WPM, "reading rate in words per minute")
	flags.IntVar(&cfg.SkipPages, "skip-pages", cfg.SkipPages, "number of leading pages to skip")
	flags.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "input poll slice per token")
	flags.StringVar(&cfg.CancelKey, "cancel-key", cfg.CancelKey, "key that stops playback")
	flags.Int64Var(&cfg.MaxFileBytes, "max-file-bytes", cfg.MaxFileBytes, "largest document accepted")
	flags.BoolVar(&cfg.PDFFallbackPdftotext, "pdftotext", cfg.PDFFallbackPdftotext, "retry unreadable PDFs with pdftotext")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write JSON logs to this file")
	flags.BoolVar(&cfg.Dump, "dump", cfg.Dump, "print the token stream instead of playing it")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), ErrUsage)
		flags.PrintDefaults()
	}

	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			return Config{}, err
		}
		if flags.NArg() == 0 {
			break
		}
		positional = append(positional, flags.Arg(0))
		args = flags.Args()[1:]
	}

	switch len(positional) {
	case 0:
		return Config{}, fmt.Errorf("%w: missing file path", ErrUsage)
	case 1:
		cfg.Path = positional[0]
	default:
		return Config{}, fmt.Errorf("%w: expected one file path, got %d", ErrUsage, len(positional))
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("file path is required")
	}
	if _, err := segment.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.WPM < 1 || c.WPM > 5000 {
		return fmt.Errorf("wpm must be between 1 and 5000, got %d", c.WPM)
	}
	if c.SkipPages < 0 {
		return fmt.Errorf("skip-pages must not be negative, got %d", c.SkipPages)
	}
	if c.PollInterval <= 0 || c.PollInterval > time.Second {
		return fmt.Errorf("poll interval must be in (0, 1s], got %v", c.PollInterval)
	}
	if utf8.RuneCountInString(c.CancelKey) != 1 {
		return fmt.Errorf("cancel key must be a single character, got %q", c.CancelKey)
	}
	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("max-file-bytes must be positive, got %d", c.MaxFileBytes)
	}
	return nil
}

// SegmentMode returns the parsed mode. Call after Validate.
func (c Config) SegmentMode() segment.Mode {
	m, _ := segment.ParseMode(c.Mode)
	return m
}

// CancelRune returns the cancel key. Call after Validate.
func (c Config) CancelRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CancelKey)
	return r
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
