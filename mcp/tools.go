// Package mcp binds the command registry to the MCP server: each registered
// contract is turned into an advertised tool whose schema comes from the same
// declaration the dispatcher validates against.
package mcp

import (
	"context"

	goMCP "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/schooldesk/mcp-school/dispatch"
	"github.com/schooldesk/mcp-school/registry"
)

func RegisterTools(s *server.MCPServer, reg *registry.Registry, d *dispatch.Dispatcher) {
	for _, cmd := range reg.Commands() {
		s.AddTool(BuildTool(cmd), toolHandler(d, cmd.Name))
	}
}

// BuildTool derives the advertised tool from a command contract.
func BuildTool(cmd *registry.Command) goMCP.Tool {
	opts := []goMCP.ToolOption{goMCP.WithDescription(cmd.Description)}
	for _, f := range cmd.Fields {
		opts = append(opts, fieldOption(f))
	}
	return goMCP.NewTool(cmd.Name, opts...)
}

func fieldOption(f registry.Field) goMCP.ToolOption {
	props := []goMCP.PropertyOption{goMCP.Description(f.Description)}
	if f.Required {
		props = append(props, goMCP.Required())
	}

	switch f.Type {
	case registry.Number:
		if n, ok := f.Default.(float64); ok {
			props = append(props, goMCP.DefaultNumber(n))
		}
		return goMCP.WithNumber(f.Name, props...)
	case registry.Boolean:
		if b, ok := f.Default.(bool); ok {
			props = append(props, goMCP.DefaultBool(b))
		}
		return goMCP.WithBoolean(f.Name, props...)
	case registry.Array:
		return goMCP.WithArray(f.Name, props...)
	default:
		if len(f.Enum) > 0 {
			props = append(props, goMCP.Enum(f.Enum...))
		}
		if s, ok := f.Default.(string); ok {
			props = append(props, goMCP.DefaultString(s))
		}
		return goMCP.WithString(f.Name, props...)
	}
}

func toolHandler(d *dispatch.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request goMCP.CallToolRequest) (*goMCP.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		env := d.Dispatch(ctx, name, args)
		if !env.Success {
			return goMCP.NewToolResultError(env.Message), nil
		}
		return goMCP.NewToolResultText(env.Payload), nil
	}
}
