package evaluation

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockChat struct {
	OnStream func(messages []llm.Message) (string, error)
}

func (m *MockChat) StreamChat(ctx context.Context, settings llm.Settings, messages []llm.Message, specs []llm.ToolSpec, onDelta func(string)) (llm.Message, error) {
	out, err := m.OnStream(messages)
	if err != nil {
		return llm.Message{}, err
	}
	onDelta(out)
	return llm.AssistantMessage(out), nil
}

type MockCompleter struct {
	Prompts    []string
	OnComplete func(prompt string) (string, error)
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string, settings llm.Settings) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.OnComplete(prompt)
}

func agentsFor(chat llm.ChatModel) func(cfg chatModel.ModelConfig) (*agent.Agent, error) {
	tok := tokenizer.MustGet()
	return func(cfg chatModel.ModelConfig) (*agent.Agent, error) {
		return agent.New(cfg, chat, tools.NewRegistry(), memory.New(cfg.Model, tok, &MockCompleter{}), tok)
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantValue     string
		wantReasoning string
	}{
		{"repeated letter", "The answer matches.\nY\nY", "Y", "The answer matches."},
		{"bare no", "N", "N", ""},
		{"lower case with dot", "Step one.\ny.", "Y", "Step one."},
		{"no verdict", "I cannot tell", "N", "I cannot tell"},
	}
	for _, tt := range tests {
		value, reasoning := ParseVerdict(tt.text)
		if value != tt.wantValue || reasoning != tt.wantReasoning {
			t.Errorf("%s: got (%q, %q), want (%q, %q)", tt.name, value, reasoning, tt.wantValue, tt.wantReasoning)
		}
	}
}

func TestDefaultDataset(t *testing.T) {
	items := DefaultDataset()
	require.Len(t, items, 5)
	for _, item := range items {
		assert.NotEmpty(t, item.Input)
		assert.NotEmpty(t, item.Reference)
	}
}

func TestEvaluator_Run(t *testing.T) {
	chat := &MockChat{OnStream: func(messages []llm.Message) (string, error) {
		return "answer to " + messages[len(messages)-1].Content, nil
	}}
	judge := &MockCompleter{OnComplete: func(prompt string) (string, error) {
		if strings.Contains(prompt, "[Input]: good") {
			return "Matches the reference.\nY\nY", nil
		}
		return "Wrong number.\nN\nN", nil
	}}

	report, err := New(agentsFor(chat), judge).Run(context.Background(), []Item{
		{Input: "good", Reference: "ref one"},
		{Input: "bad", Reference: "ref two"},
	})

	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "answer to good", report.Results[0].Prediction)
	assert.Equal(t, 1, report.Results[0].Score)
	assert.Equal(t, "N", report.Results[1].Value)
	assert.Equal(t, "Wrong number.", report.Results[1].Reasoning)
	assert.Equal(t, 0.5, report.Mean)
	assert.Equal(t, 1, report.Failures)
	assert.Contains(t, judge.Prompts[0], "[Submission]: answer to good")
	assert.Contains(t, judge.Prompts[0], "[Reference]: ref one")
}

func TestEvaluator_AgentFailureIsAFailedItem(t *testing.T) {
	chat := &MockChat{OnStream: func([]llm.Message) (string, error) { return "", errors.New("rate limited") }}
	judge := &MockCompleter{OnComplete: func(string) (string, error) { return "Y", nil }}

	report, err := New(agentsFor(chat), judge).Run(context.Background(), []Item{{Input: "q", Reference: "r"}})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Failures)
	assert.Equal(t, 0.0, report.Mean)
	assert.Empty(t, judge.Prompts)
}

func TestEvaluator_JudgeFailureStops(t *testing.T) {
	chat := &MockChat{OnStream: func([]llm.Message) (string, error) { return "ok", nil }}
	judge := &MockCompleter{OnComplete: func(string) (string, error) { return "", errors.New("judge down") }}

	_, err := New(agentsFor(chat), judge).Run(context.Background(), []Item{{Input: "q", Reference: "r"}})
	assert.Error(t, err)
}
