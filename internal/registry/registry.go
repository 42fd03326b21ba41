// Package registry holds the static tool catalog: one descriptor and one
// handler per tool name, constructed at startup and read-only afterwards.
package registry

import (
	"context"
	"sort"

	"github.com/devforge/devtools-server/internal/protocol"
)

// Handler executes a tool with validated parameters.
type Handler func(ctx context.Context, params map[string]any) (any, error)

// Descriptor describes a single tool in the catalog.
type Descriptor struct {
	// Name uniquely identifies the tool.
	Name string
	// Description explains what the tool does.
	Description string
	// Parameters is a JSON-schema-style object describing the arguments.
	Parameters map[string]any
	// ResourceURIs lists the resource URIs the tool may touch.
	ResourceURIs []string
}

// Resource describes a read-only queryable resource.
type Resource struct {
	// Name is a short resource label.
	Name string
	// URI addresses the resource.
	URI string
	// Description explains what can be read.
	Description string
	// MIMEType declares the content type of reads.
	MIMEType string
	// Read produces the current resource content.
	Read func(ctx context.Context) (string, error)
}

type entry struct {
	descriptor Descriptor
	handler    Handler
}

// Registry is the catalog of tools and resources. It is not safe for
// concurrent registration; all registration happens before serving.
type Registry struct {
	entries   map[string]entry
	resources []Resource
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool to the catalog. Registering a name twice is a
// startup error.
func (r *Registry) Register(descriptor Descriptor, handler Handler) error {
	if _, exists := r.entries[descriptor.Name]; exists {
		return protocol.NewError(protocol.KindDuplicateTool, "tool %q already registered", descriptor.Name)
	}
	r.entries[descriptor.Name] = entry{descriptor: descriptor, handler: handler}
	return nil
}

// AddResource appends a resource descriptor to the catalog.
func (r *Registry) AddResource(resource Resource) {
	r.resources = append(r.resources, resource)
}

// Lookup returns the descriptor and handler for a tool name.
func (r *Registry) Lookup(name string) (Descriptor, Handler, bool) {
	item, ok := r.entries[name]
	if !ok {
		return Descriptor{}, nil, false
	}
	return item.descriptor, item.handler, true
}

// Descriptors returns all tool descriptors sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.entries))
	for _, item := range r.entries {
		out = append(out, item.descriptor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Resources returns the registered resources.
func (r *Registry) Resources() []Resource {
	return r.resources
}
