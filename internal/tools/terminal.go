package tools

import (
	"context"
	"time"

	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/registry"
	"github.com/devforge/devtools-server/internal/terminal"
)

// registerTerminal adds the server-side session tools.
func registerTerminal(reg *registry.Registry, manager *terminal.Manager) error {
	sessionOnly := objectSchema(map[string]any{
		"sessionId": stringProp("Session identifier"),
	}, "sessionId")

	entries := []struct {
		descriptor registry.Descriptor
		handler    registry.Handler
	}{
		{
			registry.Descriptor{
				Name:        "terminal_execute",
				Description: "Run a one-shot shell command and wait for it to finish",
				Parameters: objectSchema(map[string]any{
					"command":        stringProp("Shell command to execute"),
					"cwd":            stringProp("Working directory, workspace root by default"),
					"timeoutSeconds": intProp("Timeout in seconds, 30 by default"),
				}, "command"),
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				timeout := time.Duration(intArg(params, "timeoutSeconds", 0)) * time.Second
				result, err := manager.Execute(ctx, stringArg(params, "command"), stringArg(params, "cwd"), timeout)
				// On timeout the partial output captured so far rides
				// along with the error.
				return result, err
			},
		},
		{
			registry.Descriptor{
				Name:        "terminal_create",
				Description: "Create a persistent shell session",
				Parameters: objectSchema(map[string]any{
					"name":  stringProp("Session label"),
					"cwd":   stringProp("Working directory, workspace root by default"),
					"shell": stringProp("Shell binary, $SHELL or /bin/bash by default"),
				}, "name"),
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				return manager.Create(ctx, stringArg(params, "name"), stringArg(params, "cwd"), stringArg(params, "shell"))
			},
		},
		{
			registry.Descriptor{
				Name:        "terminal_send_text",
				Description: "Write text to a session's stdin and return the resulting output",
				Parameters: objectSchema(map[string]any{
					"sessionId":  stringProp("Session identifier, the active session by default"),
					"text":       stringProp("Text to send"),
					"addNewline": boolProp("Append a newline so the shell runs the text, true by default"),
				}, "text"),
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				id := stringArg(params, "sessionId")
				if id == "" {
					active, ok := manager.GetActive()
					if !ok {
						return nil, protocol.NewError(protocol.KindSessionNotFound, "no active session")
					}
					id = active
				}
				output, err := manager.SendText(ctx, id, stringArg(params, "text"), boolArg(params, "addNewline", true))
				if err != nil {
					return nil, err
				}
				return map[string]any{"sessionId": id, "output": output}, nil
			},
		},
		{
			registry.Descriptor{
				Name:        "terminal_list",
				Description: "List live sessions",
				Parameters:  objectSchema(map[string]any{}),
			},
			func(_ context.Context, _ map[string]any) (any, error) {
				return manager.List(), nil
			},
		},
		{
			registry.Descriptor{
				Name:        "terminal_get_active",
				Description: "Get the current default session id",
				Parameters:  objectSchema(map[string]any{}),
			},
			func(_ context.Context, _ map[string]any) (any, error) {
				id, ok := manager.GetActive()
				return map[string]any{"sessionId": id, "active": ok}, nil
			},
		},
		{
			registry.Descriptor{
				Name:        "terminal_set_active",
				Description: "Point the default session at an existing session",
				Parameters:  sessionOnly,
			},
			func(_ context.Context, params map[string]any) (any, error) {
				if err := manager.SetActive(stringArg(params, "sessionId")); err != nil {
					return nil, err
				}
				return map[string]any{"sessionId": stringArg(params, "sessionId")}, nil
			},
		},
		{
			registry.Descriptor{
				Name:        "terminal_dispose",
				Description: "Terminate a session and free its resources; disposing twice is a no-op",
				Parameters:  sessionOnly,
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				if err := manager.Dispose(ctx, stringArg(params, "sessionId")); err != nil {
					return nil, err
				}
				return map[string]any{"disposed": stringArg(params, "sessionId")}, nil
			},
		},
		{
			registry.Descriptor{
				Name:        "terminal_resize",
				Description: "Resize a session's pseudo-terminal",
				Parameters: objectSchema(map[string]any{
					"sessionId": stringProp("Session identifier"),
					"cols":      intProp("Column count"),
					"rows":      intProp("Row count"),
				}, "sessionId", "cols", "rows"),
			},
			func(_ context.Context, params map[string]any) (any, error) {
				cols := clampDimension(intArg(params, "cols", 0), 80)
				rows := clampDimension(intArg(params, "rows", 0), 24)
				if err := manager.Resize(stringArg(params, "sessionId"), uint16(cols), uint16(rows)); err != nil {
					return nil, err
				}
				return map[string]any{"cols": cols, "rows": rows}, nil
			},
		},
		{
			registry.Descriptor{
				Name:        "terminal_clear",
				Description: "Drop a session's buffered output",
				Parameters:  sessionOnly,
			},
			func(_ context.Context, params map[string]any) (any, error) {
				if err := manager.Clear(stringArg(params, "sessionId")); err != nil {
					return nil, err
				}
				return map[string]any{"cleared": stringArg(params, "sessionId")}, nil
			},
		},
	}

	for _, item := range entries {
		if err := reg.Register(item.descriptor, item.handler); err != nil {
			return err
		}
	}
	return nil
}

// clampDimension keeps a PTY dimension inside the uint16 range the kernel
// accepts, falling back when the value would wrap or is non-positive.
func clampDimension(value, def int) int {
	if value < 1 || value > 0xFFFF {
		return def
	}
	return value
}
