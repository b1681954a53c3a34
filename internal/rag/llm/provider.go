package llm

import (
	"context"
	"errors"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

var ErrEmptyResponse = errors.New("model returned no choices")

// ToolCall is a model request to run one tool. Arguments is the raw JSON the model produced.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

type Message struct {
	Role      Role
	Content   string
	ToolCalls []ToolCall
	// ToolCallID links a tool result to the call it answers
	ToolCallID string
}

// ToolSpec describes a callable tool. Parameters is a JSON schema object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

type Settings struct {
	Model            string
	Temperature      float64
	FrequencyPenalty float64
	PresencePenalty  float64
	TopP             float64
	// MaxTokens of zero leaves the limit to the provider
	MaxTokens int
}

// ChatModel streams one assistant message. onDelta receives text as it arrives; the returned
// message is the complete one, including any tool calls.
type ChatModel interface {
	StreamChat(ctx context.Context, settings Settings, messages []Message, tools []ToolSpec, onDelta func(string)) (Message, error)
}

// Completer answers a single prompt without history or tools.
type Completer interface {
	Complete(ctx context.Context, prompt string, settings Settings) (string, error)
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func ToolResultMessage(callID string, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}
