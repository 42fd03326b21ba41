// Package editor bridges tool calls to an external interactive editor
// process over HTTP. File CRUD deliberately bypasses the editor command API
// and goes straight to the workspace, since it needs no editor state.
package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/devforge/devtools-server/internal/audit"
	"github.com/devforge/devtools-server/internal/memocache"
	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/workspace"
)

const (
	probeKey = "liveness"
	probeTTL = 5 * time.Second
)

// Bridge is the singleton connection to the editor host. Liveness is
// established lazily on first use and re-checked periodically; the probe
// result is shared between concurrent callers.
type Bridge struct {
	baseURL string
	client  *http.Client
	ws      *workspace.Dir
	audit   audit.Logger

	mu        sync.Mutex
	connected bool

	probes *memocache.Cache[bool]
}

// New builds a Bridge for the editor at host:port.
func New(host string, port int, ws *workspace.Dir, auditLog audit.Logger) *Bridge {
	return &Bridge{
		baseURL: fmt.Sprintf("http://%s:%d", host, port),
		client:  &http.Client{Timeout: 10 * time.Second},
		ws:      ws,
		audit:   auditLog,
		probes:  memocache.New[bool](probeTTL, 4),
	}
}

// BaseURL returns the editor endpoint this bridge targets.
func (b *Bridge) BaseURL() string { return b.baseURL }

// Connected reports whether the last probe succeeded.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// Connect probes the editor base URL and ensures the workspace root exists.
// Any HTTP status below 500, including redirects and auth challenges, counts
// as reachable.
func (b *Bridge) Connect(ctx context.Context) error {
	if live, ok := b.probes.Get(probeKey); ok && live {
		return nil
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/", nil)
	if err != nil {
		return protocol.NewError(protocol.KindBridgeUnreachable, "build probe request: %v", err)
	}
	resp, err := b.client.Do(request)
	if err != nil {
		b.markDisconnected()
		return protocol.NewError(protocol.KindBridgeUnreachable, "editor at %s is unreachable: %v", b.baseURL, err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		b.markDisconnected()
		return protocol.NewError(protocol.KindBridgeUnreachable, "editor at %s returned status %d", b.baseURL, resp.StatusCode)
	}

	b.mu.Lock()
	first := !b.connected
	b.connected = true
	b.mu.Unlock()
	b.probes.Set(probeKey, true)

	if first && b.audit != nil {
		b.audit.Record(ctx, audit.Event{Type: "bridge_connect", Detail: b.baseURL})
	}
	return nil
}

// ExecuteCommand forwards a command to the editor's command endpoint,
// connecting first if needed.
func (b *Bridge) ExecuteCommand(ctx context.Context, command string, args []any) (any, error) {
	if err := b.Connect(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]any{"command": command, "args": args})
	if err != nil {
		return nil, fmt.Errorf("encode command: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/commands", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build command request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(request)
	if err != nil {
		b.markDisconnected()
		return nil, protocol.NewError(protocol.KindBridgeUnreachable, "editor command %q: %v", command, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, protocol.NewError(protocol.KindExecutionFailed,
			"editor command %q failed with status %d: %s", command, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed struct {
		Result any `json:"result"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		// Editors that answer with a bare value are accepted as-is.
		return strings.TrimSpace(string(data)), nil
	}
	return parsed.Result, nil
}

// Context aggregates editor state from four independent remote calls. A
// failing piece is omitted rather than failing the aggregate.
func (b *Bridge) Context(ctx context.Context) (map[string]any, error) {
	if err := b.Connect(ctx); err != nil {
		return nil, err
	}

	out := make(map[string]any, 4)
	for key, path := range map[string]string{
		"version":      "/api/version",
		"extensions":   "/api/extensions",
		"settings":     "/api/settings",
		"activeEditor": "/api/active-editor",
	} {
		value, err := b.getJSON(ctx, path)
		if err != nil {
			continue
		}
		out[key] = value
	}
	return out, nil
}

// ActiveEditor returns the currently focused editor descriptor.
func (b *Bridge) ActiveEditor(ctx context.Context) (any, error) {
	if err := b.Connect(ctx); err != nil {
		return nil, err
	}
	return b.getJSON(ctx, "/api/active-editor")
}

// WorkspaceRoot returns the shared workspace root directory.
func (b *Bridge) WorkspaceRoot() string { return b.ws.Root() }

func (b *Bridge) getJSON(ctx context.Context, path string) (any, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("editor %s returned status %d", path, resp.StatusCode)
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func (b *Bridge) markDisconnected() {
	b.mu.Lock()
	b.connected = false
	b.mu.Unlock()
	b.probes.Invalidate(probeKey)
}
