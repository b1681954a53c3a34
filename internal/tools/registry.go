package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/akolanti/SDKAssistant/internal/rag/llm"
)

var ErrUnknownTool = errors.New("unknown tool")

// Registry resolves the tool names an LLM produces to implementations. Registration order is kept
// so the tool list sent to the model is stable.
type Registry struct {
	tools map[ToolName]Tool
	order []ToolName
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[ToolName]Tool, len(tools))}
	for _, t := range tools {
		if t == nil {
			continue
		}
		if _, ok := r.tools[t.Name()]; !ok {
			r.order = append(r.order, t.Name())
		}
		r.tools[t.Name()] = t
	}
	return r
}

func (r *Registry) Lookup(name string) (Tool, error) {
	t, ok := r.tools[ToolName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t, nil
}

func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Specs describes every tool as a function taking one required string argument.
func (r *Registry) Specs() []llm.ToolSpec {
	specs := make([]llm.ToolSpec, 0, len(r.order))
	for _, t := range r.Tools() {
		arg := t.Argument()
		specs = append(specs, llm.ToolSpec{
			Name:        string(t.Name()),
			Description: t.Description(),
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					arg.Name: map[string]any{"type": "string", "description": arg.Description},
				},
				"required": []string{arg.Name},
			},
		})
	}
	return specs
}

// DecodeArgument pulls the tool's argument out of the JSON arguments of a call. Models sometimes
// send the bare text instead of an object; that is accepted as the argument itself.
func DecodeArgument(t Tool, arguments string) (string, error) {
	trimmed := strings.TrimSpace(arguments)
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return "", fmt.Errorf("decoding %s arguments: %w", t.Name(), err)
	}
	value, ok := fields[t.Argument().Name]
	if !ok {
		return "", fmt.Errorf("missing %q argument for %s", t.Argument().Name, t.Name())
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%q argument for %s is not a string", t.Argument().Name, t.Name())
	}
	return text, nil
}
