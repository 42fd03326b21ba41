package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.New(slog.NewJSONHandler(&buf, nil)))

	logger.Record(context.Background(), Event{
		Type:          "tool_call",
		Tool:          "fs_read_file",
		CorrelationID: "abc-123",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "audit", entry["msg"])
	assert.Equal(t, "tool_call", entry["type"])
	assert.Equal(t, "fs_read_file", entry["tool"])
	assert.Equal(t, "abc-123", entry["correlation_id"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *StdLogger
	logger.Record(context.Background(), Event{Type: "tool_call"})

	empty := New(nil)
	empty.Record(context.Background(), Event{Type: "tool_call"})
}
