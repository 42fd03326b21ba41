package tools

import (
	"context"

	"github.com/devforge/devtools-server/internal/editor"
	"github.com/devforge/devtools-server/internal/registry"
)

// registerEditor adds the editor bridge tools.
func registerEditor(reg *registry.Registry, bridge *editor.Bridge) error {
	nameOnly := objectSchema(map[string]any{
		"name": stringProp("Editor terminal name"),
	}, "name")

	entries := []struct {
		descriptor registry.Descriptor
		handler    registry.Handler
	}{
		{
			registry.Descriptor{
				Name:        "editor_execute_command",
				Description: "Forward a command to the editor's command API",
				Parameters: objectSchema(map[string]any{
					"command": stringProp("Editor command identifier"),
					"args":    map[string]any{"type": "array", "description": "Command arguments"},
				}, "command"),
				ResourceURIs: []string{ResourceEditorActive},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				args, _ := params["args"].([]any)
				return bridge.ExecuteCommand(ctx, stringArg(params, "command"), args)
			},
		},
		{
			registry.Descriptor{
				Name:         "editor_get_context",
				Description:  "Aggregate editor version, extensions, settings and active editor",
				Parameters:   objectSchema(map[string]any{}),
				ResourceURIs: []string{ResourceEditorActive},
			},
			func(ctx context.Context, _ map[string]any) (any, error) {
				return bridge.Context(ctx)
			},
		},
		{
			registry.Descriptor{
				Name:         "editor_create_terminal",
				Description:  "Open a terminal widget inside the editor",
				Parameters:   nameOnly,
				ResourceURIs: []string{ResourceEditorActive},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				return bridge.CreateTerminal(ctx, stringArg(params, "name"))
			},
		},
		{
			registry.Descriptor{
				Name:        "editor_send_text",
				Description: "Write text into an editor terminal",
				Parameters: objectSchema(map[string]any{
					"name":       stringProp("Editor terminal name"),
					"text":       stringProp("Text to send"),
					"addNewline": boolProp("Append a newline, true by default"),
				}, "name", "text"),
				ResourceURIs: []string{ResourceEditorActive},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				return bridge.SendTextToTerminal(ctx,
					stringArg(params, "name"),
					stringArg(params, "text"),
					boolArg(params, "addNewline", true))
			},
		},
		{
			registry.Descriptor{
				Name:         "editor_get_active_terminal",
				Description:  "Get the editor's focused terminal",
				Parameters:   objectSchema(map[string]any{}),
				ResourceURIs: []string{ResourceEditorActive},
			},
			func(ctx context.Context, _ map[string]any) (any, error) {
				return bridge.ActiveTerminal(ctx)
			},
		},
		{
			registry.Descriptor{
				Name:         "editor_show_terminal",
				Description:  "Reveal an editor terminal in the UI",
				Parameters:   nameOnly,
				ResourceURIs: []string{ResourceEditorActive},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				return bridge.ShowTerminal(ctx, stringArg(params, "name"))
			},
		},
		{
			registry.Descriptor{
				Name:         "editor_dispose_terminal",
				Description:  "Close an editor terminal",
				Parameters:   nameOnly,
				ResourceURIs: []string{ResourceEditorActive},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				return bridge.DisposeTerminal(ctx, stringArg(params, "name"))
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
