package protocol

import (
	"errors"
	"fmt"
)

// Error kinds returned across the tool-execution boundary.
const (
	KindToolNotFound          = "ToolNotFound"
	KindInvalidParameters     = "InvalidParameters"
	KindExecutionFailed       = "ExecutionFailed"
	KindSpawnFailed           = "SpawnFailed"
	KindSessionNotFound       = "SessionNotFound"
	KindTimeout               = "Timeout"
	KindBridgeUnreachable     = "BridgeUnreachable"
	KindPathTraversalRejected = "PathTraversalRejected"
	KindDuplicateTool         = "DuplicateTool"
)

// ExecutionRequest is the envelope accepted by the dispatcher.
type ExecutionRequest struct {
	// Tool is the catalog name of the tool to invoke.
	Tool string `json:"tool"`
	// Parameters are the tool arguments.
	Parameters map[string]any `json:"parameters"`
}

// ErrorInfo describes a failed execution.
type ErrorInfo struct {
	// Kind is one of the stable error kind constants.
	Kind string `json:"kind"`
	// Message is a human-readable description.
	Message string `json:"message"`
}

// ExecutionResult is the normalized envelope returned to callers.
type ExecutionResult struct {
	// Success reports whether the handler completed.
	Success bool `json:"success"`
	// Result holds the handler return value on success.
	Result any `json:"result,omitempty"`
	// Error holds failure details when Success is false.
	Error *ErrorInfo `json:"error,omitempty"`
	// Fallback marks results produced by degraded-mode execution.
	Fallback bool `json:"fallback,omitempty"`
}

// Error is a structured tool error carrying a stable kind.
type Error struct {
	// Kind is one of the error kind constants.
	Kind string
	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds an Error with a formatted message.
func NewError(kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Success builds a successful ExecutionResult.
func Success(result any) ExecutionResult {
	return ExecutionResult{Success: true, Result: result}
}

// Failure builds a failed ExecutionResult, extracting the kind when the error
// wraps a *Error and falling back to ExecutionFailed otherwise.
func Failure(err error) ExecutionResult {
	kind := KindExecutionFailed
	message := ""
	if err != nil {
		message = err.Error()
	}
	var typed *Error
	if errors.As(err, &typed) {
		kind = typed.Kind
		message = typed.Message
	}
	return ExecutionResult{Success: false, Error: &ErrorInfo{Kind: kind, Message: message}}
}
