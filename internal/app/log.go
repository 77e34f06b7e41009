package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// wtHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<opID>\t<message>\t<key=value ...>
type wtHandler struct {
	w     io.Writer
	opID  string
	level slog.Level
	attrs []slog.Attr
}

func (h *wtHandler) Enabled(_ context.Context, level slog.Level) bool { return level >= h.level }

func (h *wtHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")
	level := r.Level.String()

	// Build the line first so concurrent writers never interleave fields.
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%s\t%s\t%s", ts, level, h.opID, r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, "\t%s=%v", a.Key, a.Value)
	}

	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, "\t%s=%v", a.Key, a.Value)
		return true
	})
	b.WriteByte('\n')

	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *wtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &wtHandler{
		w:     h.w,
		opID:  h.opID,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *wtHandler) WithGroup(string) slog.Handler { return h }

// parseLevel maps a config log_level to a slog level. Empty means info.
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

// newLogger creates a structured logger that writes to a rotating
// logDir/wordtrack.log and to stderr. The returned closer releases the log file.
func newLogger(logDir, opID, levelName string, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "wordtrack.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
	}

	w := io.Writer(file)
	if stderr != nil {
		w = io.MultiWriter(file, stderr)
	}
	handler := &wtHandler{w: w, opID: opID, level: level}
	return slog.New(handler), file, nil
}

// slogAdapter wraps *slog.Logger to satisfy the wt.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
