package httpapi

import (
	"net/http"
	"sync/atomic"
)

// Health answers liveness and readiness probes. Readiness flips off during
// shutdown so the mesh stops routing new tool calls here.
type Health struct {
	ready atomic.Bool
}

// NewHealth returns a Health handler.
func NewHealth() *Health {
	return &Health{}
}

// SetReady marks the server as accepting requests.
func (h *Health) SetReady() { h.ready.Store(true) }

// SetNotReady marks the server as draining.
func (h *Health) SetNotReady() { h.ready.Store(false) }

// Register mounts the probe routes on a mux.
func (h *Health) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !h.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
}
