package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
)

// LogBuffer captures slog output for assertions on log ordering.
//
// Handler() returns a text handler writing into the buffer; Lines()
// returns the captured lines. Timestamps are stripped so output is
// deterministic.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewLogBuffer creates an empty log buffer.
func NewLogBuffer() *LogBuffer {
	return &LogBuffer{}
}

// Handler returns a slog handler that writes to the buffer at debug level,
// with the time attribute removed for deterministic output.
func (b *LogBuffer) Handler() slog.Handler {
	return slog.NewTextHandler(&lockedWriter{b: b}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})
}

// Logger returns a logger writing into the buffer.
func (b *LogBuffer) Logger() *slog.Logger {
	return slog.New(b.Handler())
}

// Lines returns the captured log lines, without the trailing empty line.
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := strings.TrimRight(b.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Contains reports whether any captured line contains substr.
func (b *LogBuffer) Contains(substr string) bool {
	for _, line := range b.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

type lockedWriter struct {
	b *LogBuffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.b.mu.Lock()
	defer w.b.mu.Unlock()
	return w.b.buf.Write(p)
}
