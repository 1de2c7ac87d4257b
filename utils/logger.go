package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Logger provides leveled logging throughout the application.
type Logger struct {
	slog *slog.Logger
}

// LoggerOptions controls where and how a Logger writes. Error records go to
// ErrWriter, everything else to Writer. ErrWriter defaults to Writer.
type LoggerOptions struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Level     string
	Color     bool
}

// NewLogger creates a new Logger writing colored output to stdout, errors to
// stderr, at info level.
func NewLogger() *Logger {
	return NewLoggerWithOptions(LoggerOptions{Writer: os.Stdout, ErrWriter: os.Stderr, Level: "info", Color: true})
}

// NewLoggerWithOptions creates a Logger backed by tint handlers.
func NewLoggerWithOptions(opts LoggerOptions) *Logger {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	newHandler := func(w io.Writer) slog.Handler {
		return tint.NewHandler(w, &tint.Options{
			Level:      ParseLevel(opts.Level),
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    !opts.Color,
		})
	}

	handler := newHandler(opts.Writer)
	if opts.ErrWriter != nil {
		handler = &splitHandler{out: handler, err: newHandler(opts.ErrWriter)}
	}
	return &Logger{slog: slog.New(handler)}
}

// splitHandler sends error records to err and the rest to out.
type splitHandler struct {
	out, err slog.Handler
}

func (h *splitHandler) pick(level slog.Level) slog.Handler {
	if level >= slog.LevelError {
		return h.err
	}
	return h.out
}

func (h *splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.pick(level).Enabled(ctx, level)
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.pick(r.Level).Handle(ctx, r)
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{out: h.out.WithAttrs(attrs), err: h.err.WithAttrs(attrs)}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{out: h.out.WithGroup(name), err: h.err.WithGroup(name)}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog exposes the underlying structured logger for request-scoped fields.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

func (l *Logger) Info(format string, args ...any) {
	l.logf(slog.LevelInfo, format, args)
}

func (l *Logger) Warn(format string, args ...any) {
	l.logf(slog.LevelWarn, format, args)
}

func (l *Logger) Error(format string, args ...any) {
	l.logf(slog.LevelError, format, args)
}

func (l *Logger) Debug(format string, args ...any) {
	l.logf(slog.LevelDebug, format, args)
}

func (l *Logger) logf(level slog.Level, format string, args []any) {
	ctx := context.Background()
	if !l.slog.Enabled(ctx, level) {
		return
	}
	l.slog.Log(ctx, level, fmt.Sprintf(format, args...))
}
