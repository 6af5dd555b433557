// Package logging provides the ring-buffer slog.Handler that backs the
// system://logs resource: every record is both forwarded to the
// underlying handler (stderr, JSON-formatted) and retained in a bounded
// in-memory buffer so an agent can read recent server activity without
// shelling out to the process's stderr.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RingBufferHandler wraps another slog.Handler, retaining the last
// capacity formatted lines for RecentLogs to serve.
type RingBufferHandler struct {
	next     slog.Handler
	mu       sync.Mutex
	lines    []string
	capacity int
	nextIdx  int
	filled   bool
}

// NewRingBufferHandler wraps next, keeping up to capacity recent lines.
func NewRingBufferHandler(next slog.Handler, capacity int) *RingBufferHandler {
	if capacity <= 0 {
		capacity = 500
	}
	return &RingBufferHandler{next: next, capacity: capacity, lines: make([]string, capacity)}
}

func (h *RingBufferHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RingBufferHandler) Handle(ctx context.Context, r slog.Record) error {
	line := formatLine(r)

	h.mu.Lock()
	h.lines[h.nextIdx] = line
	h.nextIdx = (h.nextIdx + 1) % h.capacity
	if h.nextIdx == 0 {
		h.filled = true
	}
	h.mu.Unlock()

	return h.next.Handle(ctx, r)
}

func (h *RingBufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RingBufferHandler{next: h.next.WithAttrs(attrs), capacity: h.capacity, lines: h.lines, nextIdx: h.nextIdx, filled: h.filled}
}

func (h *RingBufferHandler) WithGroup(name string) slog.Handler {
	return &RingBufferHandler{next: h.next.WithGroup(name), capacity: h.capacity, lines: h.lines, nextIdx: h.nextIdx, filled: h.filled}
}

// RecentLogs returns up to n of the most recently handled lines, oldest
// first, satisfying content.LogSource.
func (h *RingBufferHandler) RecentLogs(n int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ordered []string
	if h.filled {
		ordered = append(ordered, h.lines[h.nextIdx:]...)
		ordered = append(ordered, h.lines[:h.nextIdx]...)
	} else {
		ordered = append(ordered, h.lines[:h.nextIdx]...)
	}

	if n > 0 && len(ordered) > n {
		ordered = ordered[len(ordered)-n:]
	}
	return ordered
}

func formatLine(r slog.Record) string {
	line := fmt.Sprintf("%s [%s] %s", r.Time.Format(time.RFC3339), r.Level, r.Message)
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value.Any())
		return true
	})
	return line
}
