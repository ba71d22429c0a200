// Package logging implements core.Logger on top of zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adata/dbconn/core"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var _ core.Logger = (*Logger)(nil)

type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

type config struct {
	out    io.Writer
	level  string
	format string
	file   string
}

type Option func(*config)

func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// WithLevel accepts zerolog level names ("debug", "info", "warn", ...).
func WithLevel(level string) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithFormat selects FormatConsole or FormatJSON.
func WithFormat(format string) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithFile appends log lines to the named file instead of the output.
func WithFile(path string) Option {
	return func(c *config) {
		c.file = path
	}
}

func New(opts ...Option) (*Logger, error) {
	cfg := config{
		out:    os.Stderr,
		level:  "info",
		format: FormatConsole,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.level))
	if err != nil {
		return nil, fmt.Errorf("zerolog.ParseLevel: %w", err)
	}

	l := &Logger{}

	out := cfg.out
	if cfg.file != "" {
		file, err := os.OpenFile(cfg.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
		if err != nil {
			return nil, fmt.Errorf("os.OpenFile: %w", err)
		}
		l.file = file
		out = file
	}

	switch cfg.format {
	case FormatJSON:
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.file != ""}
	default:
		l.Close()
		return nil, fmt.Errorf("unknown log format %q", cfg.format)
	}

	l.zl = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return l, nil
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a logger that adds the field to every line.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Zerolog exposes the underlying logger for structured calls.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}

func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(msg string) {
	l.zl.Error().Msg(msg)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}
