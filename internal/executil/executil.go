// Package executil runs one-shot shell commands with a sanitized
// environment. It backs the terminal_execute tool and the fallback executor,
// which must share the exact same spawn contract.
package executil

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/sanitize"
)

// Result captures the output of a completed or interrupted command.
type Result struct {
	// Stdout is the captured standard output.
	Stdout string `json:"stdout"`
	// Stderr is the captured standard error.
	Stderr string `json:"stderr"`
	// ExitCode is the process exit code, -1 when the process was killed
	// before exiting on its own.
	ExitCode int `json:"exitCode"`
}

// Build constructs an exec.Cmd for a shell command with the sanitized
// environment and resolved working directory.
func Build(ctx context.Context, command, cwd string, policy *sanitize.Policy) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "bash", "-c", command)
	cmd.Dir = policy.WorkingDirectory(cwd)
	cmd.Env = policy.Apply(os.Environ())
	// New process group so background children die with the command.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 5 * time.Second
	return cmd
}

// Run executes a shell command and waits for exit or context cancellation.
// On timeout the process group is killed and the partial output captured so
// far is still returned alongside a Timeout error.
func Run(ctx context.Context, command, cwd string, policy *sanitize.Policy) (Result, error) {
	cmd := Build(ctx, command, cwd, policy)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return result, protocol.NewError(protocol.KindTimeout, "command %q timed out", command)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit is a result, not a dispatch failure.
			return result, nil
		}
		return result, protocol.NewError(protocol.KindSpawnFailed, "spawn %q: %v", command, err)
	}
	return result, nil
}
