package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentLogsReturnsLinesInOrder(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRingBufferHandler(slog.NewTextHandler(&buf, nil), 10)
	logger := slog.New(handler)

	logger.Info("first")
	logger.Info("second")
	logger.Info("third")

	lines := handler.RecentLogs(0)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")
	assert.Contains(t, lines[2], "third")
}

func TestRecentLogsRespectsRequestedCount(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRingBufferHandler(slog.NewTextHandler(&buf, nil), 10)
	logger := slog.New(handler)

	logger.Info("first")
	logger.Info("second")
	logger.Info("third")

	lines := handler.RecentLogs(2)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "second")
	assert.Contains(t, lines[1], "third")
}

func TestRingBufferWrapsAtCapacity(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRingBufferHandler(slog.NewTextHandler(&buf, nil), 2)
	logger := slog.New(handler)

	logger.Info("one")
	logger.Info("two")
	logger.Info("three")

	lines := handler.RecentLogs(0)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "two")
	assert.Contains(t, lines[1], "three")
}

func TestRingBufferStillForwardsToWrappedHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRingBufferHandler(slog.NewTextHandler(&buf, nil), 10)
	logger := slog.New(handler)

	logger.Info("forwarded")

	assert.Contains(t, buf.String(), "forwarded")
}

func TestNewRingBufferHandlerDefaultsCapacity(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRingBufferHandler(slog.NewTextHandler(&buf, nil), 0)
	assert.Equal(t, 500, handler.capacity)
}
