package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Client {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	dir := t.TempDir()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	git("init", "-b", "main")
	git("config", "user.email", "dev@example.com")
	git("config", "user.name", "Dev")

	return New(dir)
}

func writeFile(t *testing.T, c *Client, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(c.dir, name), []byte(content), 0o644))
}

func TestStatusCleanRepo(t *testing.T) {
	c := newTestRepo(t)

	status, err := c.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "main", status["branch"])
	assert.Equal(t, true, status["clean"])
}

func TestStatusClassifiesFiles(t *testing.T) {
	c := newTestRepo(t)
	ctx := context.Background()

	writeFile(t, c, "tracked.txt", "v1")
	require.NoError(t, c.Add(ctx, "tracked.txt"))
	_, err := c.Commit(ctx, "initial")
	require.NoError(t, err)

	writeFile(t, c, "tracked.txt", "v2")
	writeFile(t, c, "staged.txt", "new")
	require.NoError(t, c.Add(ctx, "staged.txt"))
	writeFile(t, c, "loose.txt", "untracked")

	status, err := c.Status(ctx)
	require.NoError(t, err)

	assert.Equal(t, false, status["clean"])
	assert.Contains(t, status["staged"], "staged.txt")
	assert.Contains(t, status["modified"], "tracked.txt")
	assert.Contains(t, status["untracked"], "loose.txt")
}

func TestAddCommitLog(t *testing.T) {
	c := newTestRepo(t)
	ctx := context.Background()

	writeFile(t, c, "a.txt", "x")
	require.NoError(t, c.Add(ctx, ""))

	_, err := c.Commit(ctx, "add a.txt")
	require.NoError(t, err)

	log, err := c.Log(ctx, 5)
	require.NoError(t, err)
	assert.Contains(t, log, "add a.txt")
}

func TestCommitEmptyMessageRejected(t *testing.T) {
	c := newTestRepo(t)

	_, err := c.Commit(context.Background(), "   ")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	c := newTestRepo(t)
	ctx := context.Background()

	writeFile(t, c, "a.txt", "before\n")
	require.NoError(t, c.Add(ctx, ""))
	_, err := c.Commit(ctx, "initial")
	require.NoError(t, err)

	writeFile(t, c, "a.txt", "after\n")

	diff, err := c.Diff(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, diff, "-before")
	assert.Contains(t, diff, "+after")

	scoped, err := c.Diff(ctx, "a.txt")
	require.NoError(t, err)
	assert.Contains(t, scoped, "+after")
}

func TestBranchesAndCheckout(t *testing.T) {
	c := newTestRepo(t)
	ctx := context.Background()

	writeFile(t, c, "a.txt", "x")
	require.NoError(t, c.Add(ctx, ""))
	_, err := c.Commit(ctx, "initial")
	require.NoError(t, err)

	_, err = c.Checkout(ctx, "feature", true)
	require.NoError(t, err)

	branches, err := c.Branches(ctx)
	require.NoError(t, err)
	assert.Contains(t, branches, "main")
	assert.Contains(t, branches, "feature")

	_, err = c.Checkout(ctx, "main", false)
	require.NoError(t, err)

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", status["branch"])
}

func TestCheckoutEmptyBranchRejected(t *testing.T) {
	c := newTestRepo(t)

	_, err := c.Checkout(context.Background(), "", false)
	assert.Error(t, err)
}

func TestStatusOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	c := New(t.TempDir())

	_, err := c.Status(context.Background())
	assert.Error(t, err)
}
