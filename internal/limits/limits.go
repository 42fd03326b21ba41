// Package limits applies per-tool call budgets before a handler runs.
package limits

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/devforge/devtools-server/internal/protocol"
)

// Guard limits tool usage by total count and rate.
type Guard struct {
	mu     sync.Mutex
	byTool map[string]*toolState

	// MaxTotal limits total calls per tool; zero disables the check.
	MaxTotal int
	// RatePerMinute limits calls per minute per tool; zero disables it.
	RatePerMinute int
}

type toolState struct {
	count   int
	limiter *rate.Limiter
}

// NewGuard creates a guard with the given budgets.
func NewGuard(maxTotal, ratePerMinute int) *Guard {
	return &Guard{
		byTool:        make(map[string]*toolState),
		MaxTotal:      maxTotal,
		RatePerMinute: ratePerMinute,
	}
}

// Allow records one call against the tool's budget and fails with
// ExecutionFailed when a budget is exhausted.
func (g *Guard) Allow(tool string) error {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.byTool[tool]
	if state == nil {
		state = &toolState{}
		if g.RatePerMinute > 0 {
			state.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(g.RatePerMinute)), g.RatePerMinute)
		}
		g.byTool[tool] = state
	}

	if g.MaxTotal > 0 && state.count >= g.MaxTotal {
		return protocol.NewError(protocol.KindExecutionFailed, "tool %q exceeded maximum call budget", tool)
	}
	if state.limiter != nil && !state.limiter.Allow() {
		return protocol.NewError(protocol.KindExecutionFailed, "tool %q rate limit exceeded", tool)
	}

	state.count++
	return nil
}
