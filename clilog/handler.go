// Package clilog provides slog handlers and warning sinks for CLI plugin
// output.
//
// CLIHandler renders records the way a command-line user expects to read
// them: a short, optionally colorized prefix per level, no timestamps, and
// attributes appended as key=value pairs. For machine consumption use
// MachineHandler, which is plain JSON.
package clilog

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// CLIHandler is a slog.Handler for human-readable CLI output.
//
// Handle assembles each line in a local builder and issues a single Write,
// so the handler needs no mutex. All fields are immutable after construction.
type CLIHandler struct {
	w        io.Writer
	level    slog.Leveler
	colorize bool
	attrs    []slog.Attr
}

// HandlerOption configures a CLIHandler.
type HandlerOption func(*CLIHandler)

// WithLevel sets the minimum level the handler emits. Defaults to slog.LevelInfo.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(h *CLIHandler) { h.level = level }
}

// WithColor enables ANSI color on the level prefix.
func WithColor(enabled bool) HandlerOption {
	return func(h *CLIHandler) { h.colorize = enabled }
}

// NewCLIHandler creates a CLIHandler writing to w.
func NewCLIHandler(w io.Writer, opts ...HandlerOption) *CLIHandler {
	h := &CLIHandler{w: w, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// MachineHandler returns a JSON handler for machine-readable output.
func MachineHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewJSONHandler(w, opts)
}

// Enabled reports whether the handler handles records at the given level.
func (h *CLIHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes a log record.
func (h *CLIHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	if prefix := h.levelPrefix(r.Level); prefix != "" {
		b.WriteString(prefix)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)
	for _, attr := range h.attrs {
		writeAttr(&b, attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, a)
		return true
	})
	b.WriteByte('\n')
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a new handler with the given attributes added.
func (h *CLIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CLIHandler{w: h.w, level: h.level, colorize: h.colorize, attrs: merged}
}

// WithGroup returns the handler unchanged; groups add no value in flat
// human-readable lines.
func (h *CLIHandler) WithGroup(_ string) slog.Handler {
	return h
}

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiGray   = "\033[90m"
)

func (h *CLIHandler) levelPrefix(level slog.Level) string {
	var label, color string
	switch {
	case level >= slog.LevelError:
		label, color = "Error:", ansiRed
	case level >= slog.LevelWarn:
		label, color = "Warning:", ansiYellow
	case level >= slog.LevelInfo:
		return ""
	default:
		label, color = "Debug:", ansiGray
	}
	if h.colorize {
		return color + label + ansiReset
	}
	return label
}

func writeAttr(b *strings.Builder, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	b.WriteString(attr.Key)
	b.WriteByte('=')
	v := attr.Value.Resolve()
	s := v.String()
	if v.Kind() == slog.KindString && strings.ContainsAny(s, " \t\n\"") {
		s = strconv.Quote(s)
	}
	b.WriteString(s)
}
