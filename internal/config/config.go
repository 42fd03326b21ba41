package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config stores environment-driven settings for the server.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `env:"DEVTOOLS_LISTEN" envDefault:":4820"`
	// EditorHost is the editor bridge host.
	EditorHost string `env:"DEVTOOLS_EDITOR_HOST" envDefault:"127.0.0.1"`
	// EditorPort is the editor bridge port.
	EditorPort int `env:"DEVTOOLS_EDITOR_PORT" envDefault:"3710"`
	// Workspace is the default workspace root directory.
	Workspace string `env:"DEVTOOLS_WORKSPACE" envDefault:"./workspace"`
	// CompletionURL points at the upstream completion service.
	CompletionURL string `env:"DEVTOOLS_COMPLETION_URL" envDefault:"http://127.0.0.1:11434"`
	// BackendURL points at the upstream application backend.
	BackendURL string `env:"DEVTOOLS_BACKEND_URL" envDefault:"http://127.0.0.1:8080"`
	// LogLevel sets the logger level.
	LogLevel string `env:"DEVTOOLS_LOG_LEVEL" envDefault:"info"`
	// ShutdownTimeout controls graceful shutdown duration.
	ShutdownTimeout time.Duration `env:"DEVTOOLS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// PolicyPath optionally overrides the embedded sanitization policy.
	PolicyPath string `env:"DEVTOOLS_POLICY"`
	// ExecTimeout is the default one-shot command timeout.
	ExecTimeout time.Duration `env:"DEVTOOLS_EXEC_TIMEOUT" envDefault:"30s"`
	// RatePerMinute caps tool calls per minute per tool; zero disables it.
	RatePerMinute int `env:"DEVTOOLS_RATE_PER_MINUTE" envDefault:"0"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
