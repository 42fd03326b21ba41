// Package dispatch is the protocol entry point: it validates an incoming
// execution envelope against the registry, invokes the handler and
// normalizes the result. A handler fault never crosses the boundary raw.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/devforge/devtools-server/internal/audit"
	"github.com/devforge/devtools-server/internal/limits"
	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/registry"
	"github.com/devforge/devtools-server/internal/security"
)

// Dispatcher routes execution requests to registered handlers. It holds no
// per-call state and is safe for concurrent use.
type Dispatcher struct {
	registry *registry.Registry
	logger   *slog.Logger
	audit    audit.Logger
	guard    *limits.Guard
}

// New builds a Dispatcher over an already populated registry. guard may be
// nil to disable call budgets.
func New(reg *registry.Registry, logger *slog.Logger, auditLog audit.Logger, guard *limits.Guard) *Dispatcher {
	return &Dispatcher{registry: reg, logger: logger, audit: auditLog, guard: guard}
}

// Invoke executes one tool call and returns the normalized result envelope.
// All failures, including handler panics, come back as success=false with a
// stable error kind.
func (d *Dispatcher) Invoke(ctx context.Context, req protocol.ExecutionRequest) protocol.ExecutionResult {
	correlationID := uuid.NewString()
	start := time.Now()

	if d.logger != nil {
		d.logger.Info("tool call",
			"tool", req.Tool,
			"correlation_id", correlationID,
			"params", security.RedactParameters(req.Parameters),
		)
	}
	if d.audit != nil {
		d.audit.Record(ctx, audit.Event{Type: "tool_call", Tool: req.Tool, CorrelationID: correlationID})
	}

	result := d.invoke(ctx, req)

	if d.logger != nil {
		d.logger.Info("tool result",
			"tool", req.Tool,
			"correlation_id", correlationID,
			"success", result.Success,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	if d.audit != nil {
		eventType := "tool_ok"
		detail := ""
		if !result.Success {
			eventType = "tool_error"
			detail = result.Error.Message
		}
		d.audit.Record(ctx, audit.Event{Type: eventType, Tool: req.Tool, CorrelationID: correlationID, Detail: detail})
	}
	return result
}

func (d *Dispatcher) invoke(ctx context.Context, req protocol.ExecutionRequest) (result protocol.ExecutionResult) {
	descriptor, handler, ok := d.registry.Lookup(req.Tool)
	if !ok {
		return protocol.Failure(protocol.NewError(protocol.KindToolNotFound, "unknown tool %q", req.Tool))
	}

	params := req.Parameters
	if params == nil {
		params = map[string]any{}
	}
	// Shape validation runs before the handler so a bad envelope never
	// partially executes anything.
	if err := registry.ValidateParameters(params, descriptor.Parameters); err != nil {
		return protocol.Failure(err)
	}

	if err := d.guard.Allow(req.Tool); err != nil {
		return protocol.Failure(err)
	}

	defer func() {
		if r := recover(); r != nil {
			result = protocol.Failure(protocol.NewError(protocol.KindExecutionFailed, "handler panic: %v", r))
		}
	}()

	value, err := handler(ctx, params)
	if err != nil {
		failure := protocol.Failure(err)
		// Handlers may hand back partial results alongside the error,
		// e.g. output captured before a timeout.
		failure.Result = value
		return failure
	}
	return protocol.Success(value)
}

// Describe returns the catalog descriptors, for discovery endpoints.
func (d *Dispatcher) Describe() []registry.Descriptor {
	return d.registry.Descriptors()
}

// String identifies the dispatcher in logs.
func (d *Dispatcher) String() string {
	return fmt.Sprintf("dispatcher(%d tools)", len(d.registry.Descriptors()))
}
