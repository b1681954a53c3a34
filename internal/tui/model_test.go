package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/memory"
	"github.com/akolanti/SDKAssistant/internal/rag/llm"
	"github.com/akolanti/SDKAssistant/internal/rag/tokenizer"
	"github.com/akolanti/SDKAssistant/internal/tools"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockChat struct {
	OnStream func(messages []llm.Message, onDelta func(string)) (llm.Message, error)
}

func (m *MockChat) StreamChat(ctx context.Context, settings llm.Settings, messages []llm.Message, specs []llm.ToolSpec, onDelta func(string)) (llm.Message, error) {
	return m.OnStream(messages, onDelta)
}

type noSummary struct{}

func (noSummary) Complete(context.Context, string, llm.Settings) (string, error) {
	return "", errors.New("unused")
}

func newModel(t *testing.T, chat llm.ChatModel) *Model {
	t.Helper()
	tok := tokenizer.MustGet()
	cfg := chatModel.DefaultModelConfig()
	a, err := agent.New(cfg, chat, tools.NewRegistry(), memory.New(cfg.Model, tok, noSummary{}), tok)
	require.NoError(t, err)
	return New(context.Background(), a)
}

// send types text, presses enter and runs the turn to completion.
func send(t *testing.T, m *Model, text string) tea.Cmd {
	t.Helper()
	m.input.SetValue(text)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for m.busy && cmd != nil {
		_, cmd = m.Update(cmd())
	}
	return cmd
}

func TestModel_StreamsTurnIntoTranscript(t *testing.T) {
	chat := &MockChat{OnStream: func(messages []llm.Message, onDelta func(string)) (llm.Message, error) {
		onDelta("Hel")
		onDelta("lo")
		return llm.AssistantMessage("Hello"), nil
	}}
	m := newModel(t, chat)

	send(t, m, "hi there")

	assert.False(t, m.busy)
	joined := strings.Join(m.Transcript(), "\n")
	assert.Contains(t, joined, "hi there")
	assert.Contains(t, joined, "Hello")
	assert.Len(t, m.agent.Memory().Load(), 2)
	assert.Empty(t, m.input.Value())
}

func TestModel_UpstreamErrorIsGeneric(t *testing.T) {
	chat := &MockChat{OnStream: func([]llm.Message, func(string)) (llm.Message, error) {
		return llm.Message{}, errors.New("secret upstream detail")
	}}
	m := newModel(t, chat)

	send(t, m, "hi")

	joined := strings.Join(m.Transcript(), "\n")
	assert.NotContains(t, joined, "secret upstream detail")
	assert.Contains(t, joined, "An error occurred while obtaining the agent response.")
	assert.Empty(t, m.agent.Memory().Load())
}

func TestModel_QuitAndEmptyInput(t *testing.T) {
	m := newModel(t, &MockChat{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	m.input.SetValue("  quit ")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowResize(t *testing.T) {
	m := newModel(t, &MockChat{})

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 35, m.viewport.Height)
	assert.Contains(t, m.View(), "gpt-3.5-turbo")
}
