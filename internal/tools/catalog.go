// Package tools assembles the fixed tool catalog: filesystem, terminal,
// editor and git capabilities plus the read-only resource descriptors.
package tools

import (
	"github.com/devforge/devtools-server/internal/editor"
	"github.com/devforge/devtools-server/internal/gitops"
	"github.com/devforge/devtools-server/internal/registry"
	"github.com/devforge/devtools-server/internal/terminal"
	"github.com/devforge/devtools-server/internal/workspace"
)

// Deps are the handler backends the catalog dispatches to.
type Deps struct {
	// Workspace is the jailed filesystem root.
	Workspace *workspace.Dir
	// Terminals manages server-side shell sessions.
	Terminals *terminal.Manager
	// Bridge talks to the external editor.
	Bridge *editor.Bridge
	// Git runs repository commands.
	Git *gitops.Client
}

// Build populates a registry with the complete catalog. Duplicate names are
// a startup error and abort the build.
func Build(deps Deps) (*registry.Registry, error) {
	reg := registry.New()

	if err := registerFilesystem(reg, deps.Workspace); err != nil {
		return nil, err
	}
	if err := registerTerminal(reg, deps.Terminals); err != nil {
		return nil, err
	}
	if err := registerEditor(reg, deps.Bridge); err != nil {
		return nil, err
	}
	if err := registerGit(reg, deps.Git); err != nil {
		return nil, err
	}
	registerResources(reg, deps.Workspace, deps.Git, deps.Bridge)

	return reg, nil
}
