// Package gitops wraps the git CLI for the workspace repository. Handlers
// are stateless per call; every command runs with -C <workspace>.
package gitops

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Client runs git commands against one repository directory.
type Client struct {
	dir string
}

// New returns a Client for the given directory.
func New(dir string) *Client {
	return &Client{dir: dir}
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"-C", c.dir}, args...)
	output, err := exec.CommandContext(ctx, "git", full...).CombinedOutput()
	text := strings.TrimSpace(string(output))
	if err != nil {
		if text != "" {
			return "", fmt.Errorf("git %s: %s", args[0], text)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return text, nil
}

// Status returns the porcelain status plus the current branch.
func (c *Client) Status(ctx context.Context) (map[string]any, error) {
	branch, err := c.run(ctx, "branch", "--show-current")
	if err != nil {
		return nil, err
	}
	porcelain, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}

	var modified, untracked, staged []string
	for _, line := range strings.Split(porcelain, "\n") {
		if len(line) < 3 {
			continue
		}
		code, file := line[:2], strings.TrimSpace(line[2:])
		switch {
		case strings.HasPrefix(code, "??"):
			untracked = append(untracked, file)
		case code[0] != ' ':
			staged = append(staged, file)
		default:
			modified = append(modified, file)
		}
	}
	return map[string]any{
		"branch":    branch,
		"staged":    staged,
		"modified":  modified,
		"untracked": untracked,
		"clean":     porcelain == "",
	}, nil
}

// StatusText returns the raw porcelain status for the git://status resource.
func (c *Client) StatusText(ctx context.Context) (string, error) {
	return c.run(ctx, "status", "--porcelain=v1", "--branch")
}

// Diff returns the unified diff, optionally limited to one path.
func (c *Client) Diff(ctx context.Context, path string) (string, error) {
	args := []string{"diff"}
	if path != "" {
		args = append(args, "--", path)
	}
	return c.run(ctx, args...)
}

// Log returns the most recent commits, one per line.
func (c *Client) Log(ctx context.Context, limit int) (string, error) {
	if limit <= 0 {
		limit = 20
	}
	return c.run(ctx, "log", fmt.Sprintf("-%d", limit), "--oneline", "--decorate")
}

// Add stages a path, or everything when path is empty.
func (c *Client) Add(ctx context.Context, path string) error {
	if path == "" {
		path = "."
	}
	_, err := c.run(ctx, "add", "--", path)
	return err
}

// Commit records staged changes with the given message.
func (c *Client) Commit(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("commit message is empty")
	}
	return c.run(ctx, "commit", "-m", message)
}

// Branches lists local branches.
func (c *Client) Branches(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Checkout switches to a branch, creating it when create is set.
func (c *Client) Checkout(ctx context.Context, branch string, create bool) (string, error) {
	if strings.TrimSpace(branch) == "" {
		return "", fmt.Errorf("branch name is empty")
	}
	args := []string{"checkout"}
	if create {
		args = append(args, "-b")
	}
	args = append(args, branch)
	return c.run(ctx, args...)
}
