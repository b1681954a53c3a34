package tools

import (
	"context"
)

type ToolName string

const (
	SearchDocumentation ToolName = "search_documentation"
	SearchGoogle        ToolName = "search_google"
	CodeInterpreter     ToolName = "code_interpreter"
)

var actionHints = map[ToolName]string{
	SearchDocumentation: "Query to documentation",
	SearchGoogle:        "Query to Google Search",
	CodeInterpreter:     "Request to code interpreter",
}

// Hint is the label the front ends show next to an action.
func (n ToolName) Hint() string {
	if hint, ok := actionHints[n]; ok {
		return hint
	}
	return string(n)
}

// Argument is the single string parameter a tool takes.
type Argument struct {
	Name        string
	Description string
}

var QueryArgument = Argument{Name: "query", Description: "The query to execute"}

// Tool is anything the agent can call. Outputs are plain text for the LLM.
type Tool interface {
	Name() ToolName
	Description() string
	Argument() Argument
	Invoke(ctx context.Context, query string) (string, error)
}

// DocumentationSearcher is the part of the retrieval service the documentation tool needs.
type DocumentationSearcher interface {
	SearchDocumentation(ctx context.Context, query string) (string, error)
}

type documentationTool struct {
	searcher DocumentationSearcher
}

func NewDocumentationTool(searcher DocumentationSearcher) Tool {
	return &documentationTool{searcher: searcher}
}

func (d *documentationTool) Name() ToolName { return SearchDocumentation }

func (d *documentationTool) Description() string {
	return "Searches the documentation (development version) using a natural language query."
}

func (d *documentationTool) Argument() Argument { return QueryArgument }

func (d *documentationTool) Invoke(ctx context.Context, query string) (string, error) {
	return d.searcher.SearchDocumentation(ctx, query)
}
