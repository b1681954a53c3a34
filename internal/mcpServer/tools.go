package mcpServer

import (
	"context"

	"github.com/akolanti/SDKAssistant/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type QueryInput struct {
	Query string `json:"query" jsonschema:"the query to execute"`
}

type CodeInput struct {
	PythonCode string `json:"python_code" jsonschema:"the whole python script to run, print what you need to see"`
}

type ToolOutput struct {
	Output string `json:"output"`
}

func (s *Server) registerTools() {
	for _, t := range s.registry.Tools() {
		spec := &mcp.Tool{Name: string(t.Name()), Description: t.Description()}
		switch t.Argument().Name {
		case "python_code":
			mcp.AddTool(s.server, spec, s.handleCode(t))
		default:
			mcp.AddTool(s.server, spec, s.handleQuery(t))
		}
	}
}

func (s *Server) handleQuery(t tools.Tool) mcp.ToolHandlerFor[QueryInput, ToolOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, ToolOutput, error) {
		return s.invoke(ctx, t, input.Query)
	}
}

func (s *Server) handleCode(t tools.Tool) mcp.ToolHandlerFor[CodeInput, ToolOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CodeInput) (*mcp.CallToolResult, ToolOutput, error) {
		return s.invoke(ctx, t, input.PythonCode)
	}
}

// invoke reports tool failures as tool errors so the calling agent sees them as text.
func (s *Server) invoke(ctx context.Context, t tools.Tool, argument string) (*mcp.CallToolResult, ToolOutput, error) {
	output, err := t.Invoke(ctx, argument)
	if err != nil {
		s.logger.Error("Tool call failed", "tool", t.Name(), "error", err)
		return nil, ToolOutput{}, err
	}
	return nil, ToolOutput{Output: output}, nil
}
