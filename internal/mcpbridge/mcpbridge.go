// Package mcpbridge mirrors the tool catalog as an MCP server, so MCP
// clients see the same tools and resources as the native HTTP protocol.
// Calls still flow through the dispatcher, keeping validation, budgets and
// audit in one place.
package mcpbridge

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/devforge/devtools-server/internal/dispatch"
	"github.com/devforge/devtools-server/internal/protocol"
	"github.com/devforge/devtools-server/internal/registry"
)

// ServerName identifies this server toward MCP clients.
const ServerName = "devtools-server"

// Build creates an MCP server exposing the registry catalog.
func Build(reg *registry.Registry, dispatcher *dispatch.Dispatcher, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)

	for _, res := range reg.Resources() {
		resource := res
		server.AddResource(&mcp.Resource{
			Name:        resource.Name,
			URI:         resource.URI,
			Description: resource.Description,
			MIMEType:    resource.MIMEType,
		}, func(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			text, err := resource.Read(ctx)
			if err != nil {
				return nil, err
			}
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{
					{URI: resource.URI, MIMEType: resource.MIMEType, Text: text},
				},
			}, nil
		})
	}

	for _, desc := range reg.Descriptors() {
		descriptor := desc
		mcp.AddTool(server, &mcp.Tool{
			Name:        descriptor.Name,
			Description: descriptor.Description,
			InputSchema: descriptor.Parameters,
		}, func(ctx context.Context, _ *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, protocol.ExecutionResult, error) {
			result := dispatcher.Invoke(ctx, protocol.ExecutionRequest{
				Tool:       descriptor.Name,
				Parameters: input,
			})
			return nil, result, nil
		})
	}

	return server
}

// HTTPHandler wraps the MCP server in the streamable HTTP transport.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{Stateless: true})
}
