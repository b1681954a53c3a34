package mcpServer

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/SDKAssistant/internal/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockTool struct {
	name     tools.ToolName
	argument tools.Argument
	OnInvoke func(ctx context.Context, query string) (string, error)
}

func (m *MockTool) Name() tools.ToolName     { return m.name }
func (m *MockTool) Description() string      { return "mock " + string(m.name) }
func (m *MockTool) Argument() tools.Argument { return m.argument }
func (m *MockTool) Invoke(ctx context.Context, query string) (string, error) {
	return m.OnInvoke(ctx, query)
}

func newRegistry() *tools.Registry {
	docs := &MockTool{name: tools.SearchDocumentation, argument: tools.QueryArgument,
		OnInvoke: func(ctx context.Context, query string) (string, error) { return "docs for " + query, nil }}
	code := &MockTool{name: tools.CodeInterpreter, argument: tools.Argument{Name: "python_code"},
		OnInvoke: func(ctx context.Context, query string) (string, error) { return "", errors.New("sandbox down") }}
	return tools.NewRegistry(docs, code)
}

func TestHandlers(t *testing.T) {
	s := New(newRegistry())
	docs, err := s.registry.Lookup(string(tools.SearchDocumentation))
	require.NoError(t, err)
	code, err := s.registry.Lookup(string(tools.CodeInterpreter))
	require.NoError(t, err)

	_, out, err := s.handleQuery(docs)(context.Background(), nil, QueryInput{Query: "credentials"})
	require.NoError(t, err)
	assert.Equal(t, "docs for credentials", out.Output)

	_, _, err = s.handleCode(code)(context.Background(), nil, CodeInput{PythonCode: "print(1)"})
	assert.EqualError(t, err, "sandbox down")
}

func TestServer_OverInMemoryTransport(t *testing.T) {
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	_, err := New(newRegistry()).Connect(ctx, serverTransport)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	listed, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	var names []string
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"search_documentation", "code_interpreter"}, names)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_documentation",
		Arguments: map[string]any{"query": "models"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "docs for models")

	failed, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "code_interpreter",
		Arguments: map[string]any{"python_code": "print(1)"},
	})
	require.NoError(t, err)
	assert.True(t, failed.IsError)
}
