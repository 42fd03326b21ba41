package editor

import "context"

// Editor terminal primitives are thin wrappers over ExecuteCommand that
// target the editor's own terminal widget. They are unrelated to the
// server-side sessions in internal/terminal: an editor terminal lives and
// dies with the editor process.

// CreateTerminal opens a new terminal widget in the editor.
func (b *Bridge) CreateTerminal(ctx context.Context, name string) (any, error) {
	return b.ExecuteCommand(ctx, "workbench.terminal.create", []any{name})
}

// SendTextToTerminal writes text into an editor terminal.
func (b *Bridge) SendTextToTerminal(ctx context.Context, name, text string, addNewline bool) (any, error) {
	return b.ExecuteCommand(ctx, "workbench.terminal.sendText", []any{name, text, addNewline})
}

// ActiveTerminal returns the editor's focused terminal, if any.
func (b *Bridge) ActiveTerminal(ctx context.Context) (any, error) {
	return b.ExecuteCommand(ctx, "workbench.terminal.getActive", nil)
}

// ShowTerminal reveals an editor terminal in the UI.
func (b *Bridge) ShowTerminal(ctx context.Context, name string) (any, error) {
	return b.ExecuteCommand(ctx, "workbench.terminal.show", []any{name})
}

// DisposeTerminal closes an editor terminal.
func (b *Bridge) DisposeTerminal(ctx context.Context, name string) (any, error) {
	return b.ExecuteCommand(ctx, "workbench.terminal.dispose", []any{name})
}
