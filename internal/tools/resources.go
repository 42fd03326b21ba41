package tools

import (
	"context"
	"encoding/json"

	"github.com/devforge/devtools-server/internal/editor"
	"github.com/devforge/devtools-server/internal/gitops"
	"github.com/devforge/devtools-server/internal/registry"
	"github.com/devforge/devtools-server/internal/workspace"
)

// Resource URIs advertised by the catalog.
const (
	ResourceWorkspaceFiles = "workspace://files"
	ResourceGitStatus      = "git://status"
	ResourceEditorActive   = "editor://active"
)

// registerResources adds the read-only resource descriptors with live
// readers.
func registerResources(reg *registry.Registry, ws *workspace.Dir, git *gitops.Client, bridge *editor.Bridge) {
	reg.AddResource(registry.Resource{
		Name:        "workspace-files",
		URI:         ResourceWorkspaceFiles,
		Description: "All files under the workspace root, relative paths",
		MIMEType:    "application/json",
		Read: func(_ context.Context) (string, error) {
			files, err := ws.ListFiles()
			if err != nil {
				return "", err
			}
			data, err := json.Marshal(files)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
	})

	reg.AddResource(registry.Resource{
		Name:        "git-status",
		URI:         ResourceGitStatus,
		Description: "Porcelain git status of the workspace repository",
		MIMEType:    "text/plain",
		Read: func(ctx context.Context) (string, error) {
			return git.StatusText(ctx)
		},
	})

	reg.AddResource(registry.Resource{
		Name:        "editor-active",
		URI:         ResourceEditorActive,
		Description: "The editor's currently focused editor, or the bridge connection state",
		MIMEType:    "application/json",
		Read: func(ctx context.Context) (string, error) {
			active, err := bridge.ActiveEditor(ctx)
			if err != nil {
				state, marshalErr := json.Marshal(map[string]any{"connected": false, "error": err.Error()})
				if marshalErr != nil {
					return "", marshalErr
				}
				return string(state), nil
			}
			data, err := json.Marshal(active)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
	})
}
