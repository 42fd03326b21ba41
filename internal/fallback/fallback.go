// Package fallback implements degraded-mode command execution for callers
// that cannot reach the tool server. It reproduces the server's
// sanitize-then-spawn contract exactly: same policy application, same
// working-directory default, same timeout handling. A dev server started
// through this path binds the same port it would have bound through the
// server; the only visible difference is the fallback flag on the result.
package fallback

import (
	"context"
	"time"

	"github.com/devforge/devtools-server/internal/executil"
	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/sanitize"
)

// Executor runs commands locally under the shared sanitization policy.
type Executor struct {
	policy  *sanitize.Policy
	timeout time.Duration
}

// New builds an Executor. timeout bounds each command; zero means the
// server's 30s default.
func New(policy *sanitize.Policy, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Executor{policy: policy, timeout: timeout}
}

// Run executes one command and returns the envelope a caller would have
// received from terminal_execute, tagged as fallback so observability
// tooling can tell degraded execution apart from normal execution.
func (e *Executor) Run(ctx context.Context, command, cwd string) protocol.ExecutionResult {
	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := executil.Run(execCtx, command, cwd, e.policy)
	if err != nil {
		envelope := protocol.Failure(err)
		envelope.Result = result
		envelope.Fallback = true
		return envelope
	}

	envelope := protocol.Success(result)
	envelope.Fallback = true
	return envelope
}
