// Package log is chainproc's structured logger, grounded on go-ethereum's
// own log package: a slog-based logger writing slog's plain text format.
// Root wraps stderr with github.com/mattn/go-colorable when
// github.com/mattn/go-isatty reports a terminal; the records themselves
// carry no color codes in either case. Warn and Error records additionally carry a "caller" attribute captured
// via github.com/go-stack/stack, matching the teacher's log.Root() usage
// throughout core/*.go.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/go-stack/stack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Logger is the interface every component in this module logs through.
// Logging is side-effect only and is never consulted for control flow
// (spec.md §7).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type logger struct {
	s *slog.Logger
}

// New builds a Logger writing to w with slog's text handler at Debug
// level. The terminal argument is accepted but does not change the output:
// both values produce the same uncolored text records.
func New(w io.Writer, terminal bool) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &logger{s: slog.New(&callerHandler{inner: h})}
}

// Root returns a logger writing to stderr, wrapped with go-colorable when
// stderr is an attached terminal (detected via isatty.IsTerminal, as
// go-ethereum's log.Root() does). The output format is the same plain
// text either way.
func Root() Logger {
	out := os.Stderr
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return New(colorable.NewColorable(out), true)
	}
	return New(out, false)
}

func (l *logger) Debug(msg string, args ...any) { l.s.Debug(msg, args...) }
func (l *logger) Info(msg string, args ...any)  { l.s.Info(msg, args...) }
func (l *logger) Warn(msg string, args ...any)  { l.s.Warn(msg, args...) }
func (l *logger) Error(msg string, args ...any) { l.s.Error(msg, args...) }

func (l *logger) With(args ...any) Logger {
	return &logger{s: l.s.With(args...)}
}

// callerHandler wraps an slog.Handler, adding a "caller" attribute (via
// go-stack/stack) to Warn and Error records only — routine Debug/Info
// progress lines stay lightweight.
type callerHandler struct {
	inner slog.Handler
}

func (h *callerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *callerHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		// Skip this Handle frame, slog's internal frames (Logger.log and
		// Logger.Warn/Error) and this package's wrapper method to land on
		// the component that logged the record.
		trace := stack.Trace().TrimRuntime()
		if len(trace) > 4 {
			r.AddAttrs(slog.String("caller", trace[4].String()))
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *callerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &callerHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *callerHandler) WithGroup(name string) slog.Handler {
	return &callerHandler{inner: h.inner.WithGroup(name)}
}
