package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/devforge/devtools-server/configs"
	"github.com/devforge/devtools-server/internal/app"
	"github.com/devforge/devtools-server/internal/audit"
	"github.com/devforge/devtools-server/internal/config"
	"github.com/devforge/devtools-server/internal/dispatch"
	"github.com/devforge/devtools-server/internal/editor"
	"github.com/devforge/devtools-server/internal/gitops"
	"github.com/devforge/devtools-server/internal/httpapi"
	"github.com/devforge/devtools-server/internal/limits"
	"github.com/devforge/devtools-server/internal/log"
	"github.com/devforge/devtools-server/internal/mcpbridge"
	"github.com/devforge/devtools-server/internal/sanitize"
	"github.com/devforge/devtools-server/internal/terminal"
	"github.com/devforge/devtools-server/internal/tools"
	"github.com/devforge/devtools-server/internal/workspace"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel)

	policy, err := loadPolicy(cfg)
	if err != nil {
		logger.Error("load sanitization policy failed", "error", err)
		os.Exit(1)
	}

	ws, err := workspace.New(policy.WorkspaceDefault)
	if err != nil {
		logger.Error("prepare workspace failed", "error", err)
		os.Exit(1)
	}

	auditLog := audit.New(logger)
	terminals := terminal.NewManager(policy, logger, auditLog, cfg.ExecTimeout)
	bridge := editor.New(cfg.EditorHost, cfg.EditorPort, ws, auditLog)
	git := gitops.New(ws.Root())

	reg, err := tools.Build(tools.Deps{
		Workspace: ws,
		Terminals: terminals,
		Bridge:    bridge,
		Git:       git,
	})
	if err != nil {
		logger.Error("build tool catalog failed", "error", err)
		os.Exit(1)
	}

	var guard *limits.Guard
	if cfg.RatePerMinute > 0 {
		guard = limits.NewGuard(0, cfg.RatePerMinute)
	}
	dispatcher := dispatch.New(reg, logger, auditLog, guard)

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	api := httpapi.New(dispatcher, terminals, bridge, logger)
	api.CompletionURL = cfg.CompletionURL
	api.BackendURL = cfg.BackendURL
	health := httpapi.NewHealth()

	mux := http.NewServeMux()
	api.Register(mux)
	health.Register(mux)
	mux.Handle("/mcp", mcpbridge.HTTPHandler(mcpbridge.Build(reg, dispatcher, version)))

	application, err := app.New(cfg.Listen, mux, health, logger, cfg.ShutdownTimeout)
	if err != nil {
		logger.Error("init http server failed", "error", err)
		os.Exit(1)
	}

	runErr := application.Run(baseCtx)
	terminals.DisposeAll(context.Background())
	if runErr != nil {
		logger.Error("runtime error", "error", runErr)
		os.Exit(1)
	}
}

func loadPolicy(cfg config.Config) (*sanitize.Policy, error) {
	var policy *sanitize.Policy
	var err error
	if cfg.PolicyPath != "" {
		policy, err = sanitize.LoadFile(cfg.PolicyPath)
	} else {
		policy, err = sanitize.Load(configs.DefaultPolicy())
	}
	if err != nil {
		return nil, err
	}
	if policy.WorkspaceDefault == "" {
		policy.WorkspaceDefault = cfg.Workspace
	}
	return policy, nil
}
