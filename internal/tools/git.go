package tools

import (
	"context"

	"github.com/devforge/devtools-server/internal/gitops"
	"github.com/devforge/devtools-server/internal/registry"
)

// registerGit adds the stateless git tools.
func registerGit(reg *registry.Registry, git *gitops.Client) error {
	entries := []struct {
		descriptor registry.Descriptor
		handler    registry.Handler
	}{
		{
			registry.Descriptor{
				Name:         "git_status",
				Description:  "Show branch, staged, modified and untracked files",
				Parameters:   objectSchema(map[string]any{}),
				ResourceURIs: []string{ResourceGitStatus},
			},
			func(ctx context.Context, _ map[string]any) (any, error) {
				return git.Status(ctx)
			},
		},
		{
			registry.Descriptor{
				Name:        "git_diff",
				Description: "Show the unified diff of unstaged changes",
				Parameters: objectSchema(map[string]any{
					"path": stringProp("Limit the diff to one path"),
				}),
				ResourceURIs: []string{ResourceGitStatus},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				return git.Diff(ctx, stringArg(params, "path"))
			},
		},
		{
			registry.Descriptor{
				Name:        "git_log",
				Description: "Show recent commits",
				Parameters: objectSchema(map[string]any{
					"limit": intProp("Number of commits, 20 by default"),
				}),
				ResourceURIs: []string{ResourceGitStatus},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				return git.Log(ctx, intArg(params, "limit", 0))
			},
		},
		{
			registry.Descriptor{
				Name:        "git_add",
				Description: "Stage a path, or everything when no path is given",
				Parameters: objectSchema(map[string]any{
					"path": stringProp("Path to stage, all changes by default"),
				}),
				ResourceURIs: []string{ResourceGitStatus},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				if err := git.Add(ctx, stringArg(params, "path")); err != nil {
					return nil, err
				}
				return map[string]any{"staged": true}, nil
			},
		},
		{
			registry.Descriptor{
				Name:        "git_commit",
				Description: "Commit staged changes",
				Parameters: objectSchema(map[string]any{
					"message": stringProp("Commit message"),
				}, "message"),
				ResourceURIs: []string{ResourceGitStatus},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				return git.Commit(ctx, stringArg(params, "message"))
			},
		},
		{
			registry.Descriptor{
				Name:         "git_branch",
				Description:  "List local branches",
				Parameters:   objectSchema(map[string]any{}),
				ResourceURIs: []string{ResourceGitStatus},
			},
			func(ctx context.Context, _ map[string]any) (any, error) {
				return git.Branches(ctx)
			},
		},
		{
			registry.Descriptor{
				Name:        "git_checkout",
				Description: "Switch branches, optionally creating the branch first",
				Parameters: objectSchema(map[string]any{
					"branch": stringProp("Branch name"),
					"create": boolProp("Create the branch before switching"),
				}, "branch"),
				ResourceURIs: []string{ResourceGitStatus},
			},
			func(ctx context.Context, params map[string]any) (any, error) {
				return git.Checkout(ctx, stringArg(params, "branch"), boolArg(params, "create", false))
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
