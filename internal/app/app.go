package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/devforge/devtools-server/internal/httpapi"
)

// App controls the HTTP server lifecycle: start, serve, drain in-flight tool
// invocations, stop.
type App struct {
	server          *http.Server
	health          *httpapi.Health
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New initializes the HTTP server around a prepared handler and its health
// probes.
func New(listen string, handler http.Handler, health *httpapi.Health, logger *slog.Logger, shutdownTimeout time.Duration) (*App, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler is nil")
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	srv := &http.Server{
		Addr:         listen,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		server:          srv,
		health:          health,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the listener fails. A failure to bind the port is fatal.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if a.health != nil {
			a.health.SetReady()
		}
		if a.logger != nil {
			a.logger.Info("http server started", "addr", a.server.Addr)
		}
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		if a.logger != nil {
			a.logger.Info("shutdown requested")
		}
		return a.shutdown()
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if a.logger != nil {
			a.logger.Error("http server error", "error", err)
		}
		return err
	}
}

// shutdown stops accepting new requests and lets in-flight invocations
// finish or time out within the shutdown budget.
func (a *App) shutdown() error {
	if a.health != nil {
		a.health.SetNotReady()
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
