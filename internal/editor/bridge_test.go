package editor

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/workspace"
)

func newTestBridge(t *testing.T, handler http.Handler) (*Bridge, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	parsed, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, portText, err := net.SplitHostPort(parsed.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portText)
	require.NoError(t, err)

	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)

	return New(host, port, ws, nil), srv
}

func TestConnectReachable(t *testing.T) {
	bridge, _ := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, bridge.Connect(context.Background()))
	assert.True(t, bridge.Connected())
}

func TestConnectTreatsClientErrorsAsReachable(t *testing.T) {
	// 404 or an auth challenge still proves something is listening.
	for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized, http.StatusFound} {
		bridge, _ := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		assert.NoError(t, bridge.Connect(context.Background()), "status %d", status)
	}
}

func TestConnectServerErrorIsUnreachable(t *testing.T) {
	bridge, _ := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := bridge.Connect(context.Background())
	require.Error(t, err)

	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protocol.KindBridgeUnreachable, perr.Kind)
	assert.False(t, bridge.Connected())
}

func TestConnectDeadEndpoint(t *testing.T) {
	bridge, srv := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := bridge.Connect(context.Background())
	require.Error(t, err)

	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protocol.KindBridgeUnreachable, perr.Kind)
}

func TestConnectProbeIsCached(t *testing.T) {
	var probes atomic.Int32
	bridge, _ := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			probes.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		require.NoError(t, bridge.Connect(context.Background()))
	}
	assert.Equal(t, int32(1), probes.Load())
}

func TestExecuteCommand(t *testing.T) {
	var gotCommand string
	var gotArgs []any
	bridge, _ := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/commands" {
			w.WriteHeader(http.StatusOK)
			return
		}
		var body struct {
			Command string `json:"command"`
			Args    []any  `json:"args"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotCommand = body.Command
		gotArgs = body.Args
		json.NewEncoder(w).Encode(map[string]any{"result": "terminal-1"})
	}))

	result, err := bridge.ExecuteCommand(context.Background(), "workbench.terminal.create", []any{"build"})
	require.NoError(t, err)
	assert.Equal(t, "terminal-1", result)
	assert.Equal(t, "workbench.terminal.create", gotCommand)
	assert.Equal(t, []any{"build"}, gotArgs)
}

func TestExecuteCommandBareBody(t *testing.T) {
	bridge, _ := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/commands" {
			w.Write([]byte("plain response"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	result, err := bridge.ExecuteCommand(context.Background(), "noop", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain response", result)
}

func TestExecuteCommandErrorStatus(t *testing.T) {
	bridge, _ := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/commands" {
			http.Error(w, "unknown command", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	_, err := bridge.ExecuteCommand(context.Background(), "bogus", nil)
	require.Error(t, err)

	var perr *protocol.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, protocol.KindExecutionFailed, perr.Kind)
}

func TestContextOmitsFailingPieces(t *testing.T) {
	bridge, _ := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/version":
			json.NewEncoder(w).Encode("1.88.0")
		case "/api/extensions":
			json.NewEncoder(w).Encode([]string{"vim", "gitlens"})
		case "/api/settings":
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		case "/api/active-editor":
			json.NewEncoder(w).Encode(map[string]any{"file": "main.go"})
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))

	result, err := bridge.Context(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.88.0", result["version"])
	assert.Contains(t, result, "extensions")
	assert.Contains(t, result, "activeEditor")
	assert.NotContains(t, result, "settings")
}

func TestTerminalWrappersTargetEditorWidget(t *testing.T) {
	var commands []string
	bridge, _ := newTestBridge(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/commands" {
			var body struct {
				Command string `json:"command"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			commands = append(commands, body.Command)
			json.NewEncoder(w).Encode(map[string]any{"result": true})
		} else {
			w.WriteHeader(http.StatusOK)
		}
	}))

	ctx := context.Background()
	_, err := bridge.CreateTerminal(ctx, "build")
	require.NoError(t, err)
	_, err = bridge.SendTextToTerminal(ctx, "build", "make", true)
	require.NoError(t, err)
	_, err = bridge.ActiveTerminal(ctx)
	require.NoError(t, err)
	_, err = bridge.ShowTerminal(ctx, "build")
	require.NoError(t, err)
	_, err = bridge.DisposeTerminal(ctx, "build")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"workbench.terminal.create",
		"workbench.terminal.sendText",
		"workbench.terminal.getActive",
		"workbench.terminal.show",
		"workbench.terminal.dispose",
	}, commands)
}
