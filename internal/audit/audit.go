package audit

import (
	"context"
	"log/slog"
)

// Event represents an append-only audit entry for tool and session activity.
type Event struct {
	// Type describes the event kind (tool_call, tool_ok, tool_error,
	// session_create, session_dispose, bridge_connect, ...).
	Type string
	// Tool is the tool name, when the event concerns a tool call.
	Tool string
	// SessionID links events to a terminal session.
	SessionID string
	// CorrelationID links related events.
	CorrelationID string
	// Detail provides additional context.
	Detail string
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(_ context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info("audit",
		"type", event.Type,
		"tool", event.Tool,
		"session_id", event.SessionID,
		"correlation_id", event.CorrelationID,
		"detail", event.Detail,
	)
}
