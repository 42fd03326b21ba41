package terminal

import (
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"
)

// Session statuses reported to callers.
const (
	StatusRunning  = "running"
	StatusIdle     = "idle"
	StatusDisposed = "disposed"
)

const ringSize = 64 * 1024

// Session owns one spawned shell process behind a PTY. Sessions are always
// addressed by id; the process handle never crosses a package boundary.
type Session struct {
	id        string
	name      string
	cwd       string
	createdAt time.Time

	cmd  *exec.Cmd
	ptmx *os.File
	ring *ringBuffer

	// writeMu serializes stdin writes, giving per-session FIFO ordering.
	writeMu sync.Mutex

	// readOffset marks the end of the output already handed to a caller.
	readOffset atomic.Int64

	done     chan struct{}
	exitCode atomic.Int32
	disposed atomic.Bool
}

// Info is the externally visible session state.
type Info struct {
	// ID is the session identifier.
	ID string `json:"id"`
	// Name is the caller-supplied label.
	Name string `json:"name"`
	// Cwd is the session working directory.
	Cwd string `json:"cwd"`
	// CreatedAt is the spawn time in RFC 3339 form.
	CreatedAt string `json:"createdAt"`
	// Status is running, idle or disposed.
	Status string `json:"status"`
}

// Info returns a snapshot of the session.
func (s *Session) Info() Info {
	return Info{
		ID:        s.id,
		Name:      s.name,
		Cwd:       s.cwd,
		CreatedAt: s.createdAt.UTC().Format(time.RFC3339),
		Status:    s.status(),
	}
}

// status infers idle from the absence of unread output. It never gates an
// operation.
func (s *Session) status() string {
	if s.disposed.Load() {
		return StatusDisposed
	}
	if s.ring.Total() <= s.readOffset.Load() {
		return StatusIdle
	}
	return StatusRunning
}

// readLoop copies PTY output into the ring buffer until the PTY closes.
func (s *Session) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.ring.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}
