// Package httpapi exposes the tool-execution protocol over HTTP.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/devforge/devtools-server/internal/dispatch"
	"github.com/devforge/devtools-server/internal/editor"
	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/terminal"
)

// Handler serves the execute endpoint, discovery and status.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	terminals  *terminal.Manager
	bridge     *editor.Bridge
	logger     *slog.Logger

	// Upstream endpoints surfaced in status for the dashboard.
	CompletionURL string
	BackendURL    string
}

// New builds the API handler.
func New(dispatcher *dispatch.Dispatcher, terminals *terminal.Manager, bridge *editor.Bridge, logger *slog.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, terminals: terminals, bridge: bridge, logger: logger}
}

// Register mounts the API routes on a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tools/execute", h.execute)
	mux.HandleFunc("GET /api/tools", h.listTools)
	mux.HandleFunc("GET /api/status", h.status)
}

// execute handles one tool invocation. Transport-level errors are reserved
// for envelopes that cannot even be parsed; every tool failure comes back as
// HTTP 200 with success=false.
func (h *Handler) execute(w http.ResponseWriter, r *http.Request) {
	var req protocol.ExecutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request envelope: "+err.Error(), http.StatusBadRequest)
		return
	}

	result := h.dispatcher.Invoke(r.Context(), req)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) listTools(w http.ResponseWriter, _ *http.Request) {
	descriptors := h.dispatcher.Describe()
	out := make([]map[string]any, 0, len(descriptors))
	for _, item := range descriptors {
		out = append(out, map[string]any{
			"name":         item.Name,
			"description":  item.Description,
			"parameters":   item.Parameters,
			"resourceUris": item.ResourceURIs,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": out})
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions":        h.terminals.Count(),
		"editorConnected": h.bridge.Connected(),
		"editorUrl":       h.bridge.BaseURL(),
		"completionUrl":   h.CompletionURL,
		"backendUrl":      h.BackendURL,
	})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
