package agent

import (
	"errors"

	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
)

var (
	// ErrUpstream wraps chat model failures. Public boundaries report it with a generic message.
	ErrUpstream       = errors.New("an error occurred while obtaining the agent response")
	ErrStreamConsumed = errors.New("agent stream already consumed")
)

type EventType string

const (
	EventTextDelta    EventType = "text_delta"
	EventToolStarted  EventType = "tool_started"
	EventToolFinished EventType = "tool_finished"
	EventDone         EventType = "done"
)

// Event is one step of a streamed turn. Text is set for text deltas, Action for tool events
// (without Output while the tool runs) and Result for the final event.
type Event struct {
	Type   EventType         `json:"type"`
	Text   string            `json:"text,omitempty"`
	Action *chatModel.Action `json:"action,omitempty"`
	Hint   string            `json:"hint,omitempty"`
	Result *Result           `json:"result,omitempty"`
}

// Result is a completed turn as committed to memory.
type Result struct {
	Input     string             `json:"input"`
	Output    string             `json:"output"`
	Actions   []chatModel.Action `json:"actions"`
	Truncated bool               `json:"-"`
}
