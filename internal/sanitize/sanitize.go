// Package sanitize computes safe process environments for spawned commands.
//
// The server usually runs next to a dev server that binds a fixed port taken
// from an environment variable. Any child that inherits that variable will
// try to bind the same port and fail, so the policy strips it before spawn.
package sanitize

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Policy describes how spawned-process environments are computed.
type Policy struct {
	// StripKeys are removed from the ambient environment.
	StripKeys []string `yaml:"strip_keys"`
	// ForcedKeys are set after stripping, overriding inherited values.
	ForcedKeys map[string]string `yaml:"forced_keys"`
	// WorkspaceDefault is the working directory used when a caller
	// does not provide one.
	WorkspaceDefault string `yaml:"workspace_default"`
}

// Load parses a YAML policy document.
func Load(data []byte) (*Policy, error) {
	var policy Policy
	if err := yaml.Load(data, &policy, yaml.WithKnownFields()); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	return &policy, nil
}

// LoadFile reads and parses a policy file.
func LoadFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy %s: %w", path, err)
	}
	return Load(data)
}

// Apply computes the sanitized environment from an ambient environ in
// "KEY=VALUE" form. Strip keys are deleted, forced keys are overlaid in
// sorted order at the end. The function is pure and idempotent.
func (p *Policy) Apply(environ []string) []string {
	if p == nil {
		return append([]string(nil), environ...)
	}

	drop := make(map[string]struct{}, len(p.StripKeys)+len(p.ForcedKeys))
	for _, key := range p.StripKeys {
		drop[key] = struct{}{}
	}
	for key := range p.ForcedKeys {
		drop[key] = struct{}{}
	}

	out := make([]string, 0, len(environ)+len(p.ForcedKeys))
	for _, entry := range environ {
		key, _, ok := strings.Cut(entry, "=")
		if ok {
			if _, skip := drop[key]; skip {
				continue
			}
		}
		out = append(out, entry)
	}

	forced := make([]string, 0, len(p.ForcedKeys))
	for key, value := range p.ForcedKeys {
		forced = append(forced, key+"="+value)
	}
	sort.Strings(forced)

	return append(out, forced...)
}

// WorkingDirectory resolves a requested working directory against the
// policy default.
func (p *Policy) WorkingDirectory(requested string) string {
	if strings.TrimSpace(requested) != "" {
		return requested
	}
	if p != nil && p.WorkspaceDefault != "" {
		return p.WorkspaceDefault
	}
	return "."
}
