// Package terminal manages server-side shell sessions: one spawned process
// per session id, ordered command submission, bounded output buffering and
// explicit disposal. These sessions are distinct from the editor's own
// terminal widgets, which live and die with the editor process.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"

	"github.com/devforge/devtools-server/internal/audit"
	"github.com/devforge/devtools-server/internal/executil"
	"github.com/devforge/devtools-server/internal/maputil"
	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/sanitize"
)

const (
	defaultCols = 80
	defaultRows = 24

	// outputSettle is how long SendText waits for the shell to produce
	// output after a write before returning what arrived.
	outputSettle = 100 * time.Millisecond
	outputWait   = 2 * time.Second
)

// Manager owns the session table and the active-session pointer.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	active   string

	policy       *sanitize.Policy
	logger       *slog.Logger
	audit        audit.Logger
	execTimeout  time.Duration
	disposeGrace time.Duration
}

// NewManager creates a Manager spawning processes under the given policy.
func NewManager(policy *sanitize.Policy, logger *slog.Logger, auditLog audit.Logger, execTimeout time.Duration) *Manager {
	if execTimeout <= 0 {
		execTimeout = 30 * time.Second
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		policy:       policy,
		logger:       logger,
		audit:        auditLog,
		execTimeout:  execTimeout,
		disposeGrace: 3 * time.Second,
	}
}

// Create spawns a shell process for a new session and returns its info.
func (m *Manager) Create(ctx context.Context, name, cwd, shell string) (Info, error) {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/bash"
	}

	dir := m.policy.WorkingDirectory(cwd)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return Info{}, protocol.NewError(protocol.KindSpawnFailed, "working directory %q does not exist", dir)
	}

	cmd := exec.Command(shell)
	cmd.Dir = dir
	cmd.Env = append(m.policy.Apply(os.Environ()), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: defaultCols, Rows: defaultRows})
	if err != nil {
		return Info{}, protocol.NewError(protocol.KindSpawnFailed, "spawn shell %q: %v", shell, err)
	}

	session := &Session{
		id:        uuid.NewString(),
		name:      name,
		cwd:       dir,
		createdAt: time.Now(),
		cmd:       cmd,
		ptmx:      ptmx,
		ring:      newRingBuffer(ringSize),
		done:      make(chan struct{}),
	}

	m.mu.Lock()
	m.sessions[session.id] = session
	if m.active == "" {
		m.active = session.id
	}
	m.mu.Unlock()

	go session.readLoop()
	go m.reap(session)

	if m.logger != nil {
		m.logger.Info("terminal session created", "session_id", session.id, "name", name, "cwd", dir, "pid", cmd.Process.Pid)
	}
	if m.audit != nil {
		m.audit.Record(ctx, audit.Event{Type: "session_create", SessionID: session.id, Detail: name})
	}
	return session.Info(), nil
}

// reap waits for the shell process to exit on its own and destroys the
// session entry when it does.
func (m *Manager) reap(session *Session) {
	code := 0
	if err := session.cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			code = 1
		}
	}
	session.exitCode.Store(int32(code))
	close(session.done)
	session.ptmx.Close()

	if session.disposed.CompareAndSwap(false, true) {
		m.remove(session.id)
		if m.logger != nil {
			m.logger.Info("terminal session exited", "session_id", session.id, "exit_code", code)
		}
	}
}

// SendText writes text to the session's stdin, in submission order, and
// returns the output produced in response. A trailing newline is appended
// when addNewline is set so the shell executes the text as a command.
func (m *Manager) SendText(ctx context.Context, id, text string, addNewline bool) (string, error) {
	session, err := m.get(id)
	if err != nil {
		return "", err
	}

	session.writeMu.Lock()
	defer session.writeMu.Unlock()

	offset := session.ring.Total()
	payload := text
	if addNewline {
		payload += "\n"
	}
	if _, err := session.ptmx.Write([]byte(payload)); err != nil {
		return "", protocol.NewError(protocol.KindSessionNotFound, "session %q is no longer writable", id)
	}

	output := m.collectOutput(ctx, session, offset)
	session.readOffset.Store(session.ring.Total())
	return output, nil
}

// collectOutput waits for the shell to react to a write, returning once the
// output stream goes quiet or the wait budget runs out.
func (m *Manager) collectOutput(ctx context.Context, session *Session, offset int64) string {
	deadline := time.After(outputWait)
	last := session.ring.Total()
	for {
		select {
		case <-ctx.Done():
			return string(session.ring.Since(offset))
		case <-session.done:
			return string(session.ring.Since(offset))
		case <-deadline:
			return string(session.ring.Since(offset))
		case <-time.After(outputSettle):
			current := session.ring.Total()
			if current > offset && current == last {
				return string(session.ring.Since(offset))
			}
			last = current
		}
	}
}

// List returns info for all live sessions.
func (m *Manager) List() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Info, 0, len(m.sessions))
	for _, session := range m.sessions {
		out = append(out, session.Info())
	}
	return out
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// GetActive returns the current default session id, if any.
func (m *Manager) GetActive() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.active != ""
}

// SetActive points the active-session pointer at an existing session.
func (m *Manager) SetActive(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return protocol.NewError(protocol.KindSessionNotFound, "no session %q", id)
	}
	m.active = id
	return nil
}

// Resize forwards new dimensions to the session's PTY.
func (m *Manager) Resize(id string, cols, rows uint16) error {
	session, err := m.get(id)
	if err != nil {
		return err
	}
	if err := pty.Setsize(session.ptmx, &pty.Winsize{Cols: cols, Rows: rows}); err != nil {
		return fmt.Errorf("resize session %s: %w", id, err)
	}
	return nil
}

// Clear drops the session's buffered output.
func (m *Manager) Clear(id string) error {
	session, err := m.get(id)
	if err != nil {
		return err
	}
	session.ring.Reset()
	session.readOffset.Store(session.ring.Total())
	return nil
}

// Dispose terminates the session process and frees its entry. Disposing an
// already disposed (or unknown) id is a no-op success.
func (m *Manager) Dispose(ctx context.Context, id string) error {
	session, ok := maputil.Pop(&m.mu, m.sessions, id)
	if !ok {
		return nil
	}
	m.clearActive(id)

	if session.disposed.CompareAndSwap(false, true) {
		m.terminate(session)
	}

	if m.logger != nil {
		m.logger.Info("terminal session disposed", "session_id", id)
	}
	if m.audit != nil {
		m.audit.Record(ctx, audit.Event{Type: "session_dispose", SessionID: id})
	}
	return nil
}

// DisposeAll tears down every live session; used on shutdown.
func (m *Manager) DisposeAll(ctx context.Context) {
	for _, info := range m.List() {
		_ = m.Dispose(ctx, info.ID)
	}
}

// terminate signals the process group gracefully, then kills it after the
// grace period.
func (m *Manager) terminate(session *Session) {
	if session.cmd.Process != nil {
		_ = syscall.Kill(-session.cmd.Process.Pid, syscall.SIGTERM)
	}
	select {
	case <-session.done:
	case <-time.After(m.disposeGrace):
		if session.cmd.Process != nil {
			_ = syscall.Kill(-session.cmd.Process.Pid, syscall.SIGKILL)
		}
		<-session.done
	}
	session.ptmx.Close()
}

// Execute runs a one-shot command: spawn, wait for exit or timeout, dispose.
// Partial output is returned on timeout.
func (m *Manager) Execute(ctx context.Context, command, cwd string, timeout time.Duration) (executil.Result, error) {
	if timeout <= 0 {
		timeout = m.execTimeout
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return executil.Run(execCtx, command, cwd, m.policy)
}

// remove drops a session entry after its process exited on its own.
func (m *Manager) remove(id string) {
	maputil.Pop(&m.mu, m.sessions, id)
	m.clearActive(id)
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, protocol.NewError(protocol.KindSessionNotFound, "no session %q", id)
	}
	return session, nil
}

func (m *Manager) clearActive(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == id {
		m.active = ""
	}
}
