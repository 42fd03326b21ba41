package tools

import (
	"context"

	"github.com/devforge/devtools-server/internal/registry"
	"github.com/devforge/devtools-server/internal/workspace"
)

// registerFilesystem adds the stateless workspace-jailed file tools.
func registerFilesystem(reg *registry.Registry, ws *workspace.Dir) error {
	pathOnly := objectSchema(map[string]any{
		"path": stringProp("Path relative to the workspace root"),
	}, "path")
	pathContent := objectSchema(map[string]any{
		"path":    stringProp("Path relative to the workspace root"),
		"content": stringProp("File content"),
	}, "path", "content")
	fromTo := objectSchema(map[string]any{
		"from": stringProp("Source path relative to the workspace root"),
		"to":   stringProp("Destination path relative to the workspace root"),
	}, "from", "to")

	entries := []struct {
		descriptor registry.Descriptor
		handler    registry.Handler
	}{
		{
			registry.Descriptor{
				Name:         "fs_read_file",
				Description:  "Read a file from the workspace",
				Parameters:   pathOnly,
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				return ws.ReadFile(stringArg(params, "path"))
			},
		},
		{
			registry.Descriptor{
				Name:         "fs_write_file",
				Description:  "Write content to a file, creating it if needed",
				Parameters:   pathContent,
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				if err := ws.WriteFile(stringArg(params, "path"), stringArg(params, "content")); err != nil {
					return nil, err
				}
				return map[string]any{"path": stringArg(params, "path")}, nil
			},
		},
		{
			registry.Descriptor{
				Name:        "fs_create_file",
				Description: "Create a new file; fails if the file already exists",
				Parameters: objectSchema(map[string]any{
					"path":    stringProp("Path relative to the workspace root"),
					"content": stringProp("Initial content, empty by default"),
				}, "path"),
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				if err := ws.CreateFile(stringArg(params, "path"), stringArg(params, "content")); err != nil {
					return nil, err
				}
				return map[string]any{"path": stringArg(params, "path")}, nil
			},
		},
		{
			registry.Descriptor{
				Name:         "fs_delete_file",
				Description:  "Delete a file from the workspace",
				Parameters:   pathOnly,
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				if err := ws.DeleteFile(stringArg(params, "path")); err != nil {
					return nil, err
				}
				return map[string]any{"deleted": stringArg(params, "path")}, nil
			},
		},
		{
			registry.Descriptor{
				Name:         "fs_rename_file",
				Description:  "Rename or move a file inside the workspace",
				Parameters:   fromTo,
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				if err := ws.RenameFile(stringArg(params, "from"), stringArg(params, "to")); err != nil {
					return nil, err
				}
				return map[string]any{"from": stringArg(params, "from"), "to": stringArg(params, "to")}, nil
			},
		},
		{
			registry.Descriptor{
				Name:         "fs_copy_file",
				Description:  "Copy a file inside the workspace",
				Parameters:   fromTo,
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				if err := ws.CopyFile(stringArg(params, "from"), stringArg(params, "to")); err != nil {
					return nil, err
				}
				return map[string]any{"from": stringArg(params, "from"), "to": stringArg(params, "to")}, nil
			},
		},
		{
			registry.Descriptor{
				Name:         "fs_create_directory",
				Description:  "Create a directory and its parents",
				Parameters:   pathOnly,
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				if err := ws.CreateDirectory(stringArg(params, "path")); err != nil {
					return nil, err
				}
				return map[string]any{"path": stringArg(params, "path")}, nil
			},
		},
		{
			registry.Descriptor{
				Name:         "fs_delete_directory",
				Description:  "Delete a directory recursively",
				Parameters:   pathOnly,
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				if err := ws.DeleteDirectory(stringArg(params, "path")); err != nil {
					return nil, err
				}
				return map[string]any{"deleted": stringArg(params, "path")}, nil
			},
		},
		{
			registry.Descriptor{
				Name:        "fs_list_directory",
				Description: "List the immediate entries of a directory",
				Parameters: objectSchema(map[string]any{
					"path": stringProp("Directory path, workspace root by default"),
				}),
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				return ws.ListDirectory(stringArg(params, "path"))
			},
		},
		{
			registry.Descriptor{
				Name:         "fs_exists",
				Description:  "Check whether a path exists in the workspace",
				Parameters:   pathOnly,
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				exists, err := ws.Exists(stringArg(params, "path"))
				if err != nil {
					return nil, err
				}
				return map[string]any{"exists": exists}, nil
			},
		},
		{
			registry.Descriptor{
				Name:         "fs_get_stats",
				Description:  "Get size, mode and modification time for a path",
				Parameters:   pathOnly,
				ResourceURIs: []string{ResourceWorkspaceFiles},
			},
			func(_ context.Context, params map[string]any) (any, error) {
				return ws.GetStats(stringArg(params, "path"))
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
