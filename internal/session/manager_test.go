package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/data/store"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/memory"
	"github.com/akolanti/SDKAssistant/internal/rag/llm"
	"github.com/akolanti/SDKAssistant/internal/rag/tokenizer"
	"github.com/akolanti/SDKAssistant/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoChat answers every message with "echo: <last user message>", streamed as one delta.
// When gate is set every call waits on it after signalling started.
type echoChat struct {
	started chan struct{}
	gate    chan struct{}
}

func (e *echoChat) StreamChat(ctx context.Context, settings llm.Settings, messages []llm.Message, specs []llm.ToolSpec, onDelta func(string)) (llm.Message, error) {
	if e.gate != nil {
		e.started <- struct{}{}
		select {
		case <-e.gate:
		case <-ctx.Done():
			return llm.Message{}, ctx.Err()
		}
	}
	out := "echo: " + messages[len(messages)-1].Content
	onDelta(out)
	return llm.AssistantMessage(out), nil
}

type noSummary struct{}

func (noSummary) Complete(ctx context.Context, prompt string, settings llm.Settings) (string, error) {
	return "", errors.New("unused")
}

func factoryFor(chat llm.ChatModel) AgentFactory {
	tok := tokenizer.MustGet()
	return func(cfg chatModel.ModelConfig) (*agent.Agent, error) {
		return agent.New(cfg, chat, tools.NewRegistry(), memory.New(cfg.Model, tok, noSummary{}), tok)
	}
}

func discard(agent.Event) error { return nil }

func TestManager_CreateRejectsInvalidConfig(t *testing.T) {
	m := NewManager(factoryFor(&echoChat{}), nil)
	cfg := chatModel.DefaultModelConfig()
	cfg.TopP = 3

	_, err := m.Create(context.Background(), cfg)

	assert.True(t, errors.Is(err, chatModel.ErrInvalidInput))
	assert.Equal(t, 0, m.Count())
}

func TestManager_TurnAndTranscript(t *testing.T) {
	m := NewManager(factoryFor(&echoChat{}), nil)
	ctx := context.Background()
	s, err := m.Create(ctx, chatModel.DefaultModelConfig())
	require.NoError(t, err)

	var types []agent.EventType
	res, err := m.RunTurn(ctx, s.ID, agent.Input{Text: "hello"}, func(e agent.Event) error {
		types = append(types, e.Type)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "echo: hello", res.Output)
	assert.Equal(t, []agent.EventType{agent.EventTextDelta, agent.EventDone}, types)

	transcript, err := m.Transcript(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 2)
	assert.Equal(t, chatModel.RoleHuman, transcript[0].Role)
	assert.Equal(t, "hello", transcript[0].Content)
	assert.Equal(t, "echo: hello", transcript[1].Content)
	assert.Empty(t, transcript[1].Actions)
}

func TestManager_UnknownSession(t *testing.T) {
	m := NewManager(factoryFor(&echoChat{}), store.InitConversationStore())

	_, err := m.RunTurn(context.Background(), "missing", agent.Input{Text: "hi"}, discard)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	_, err = m.Transcript(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestManager_ConcurrentTurnIsBusy(t *testing.T) {
	chat := &echoChat{started: make(chan struct{}), gate: make(chan struct{})}
	m := NewManager(factoryFor(chat), nil)
	ctx := context.Background()
	s, err := m.Create(ctx, chatModel.DefaultModelConfig())
	require.NoError(t, err)

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = m.RunTurn(ctx, s.ID, agent.Input{Text: "slow"}, discard)
	}()
	<-chat.started

	_, err = m.RunTurn(ctx, s.ID, agent.Input{Text: "fast"}, discard)
	assert.True(t, errors.Is(err, ErrSessionBusy))
	assert.True(t, errors.Is(m.Reset(ctx, s.ID), ErrSessionBusy))

	close(chat.gate)
	wg.Wait()
	require.NoError(t, firstErr)

	transcript, err := m.Transcript(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, transcript, 2)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(factoryFor(&echoChat{}), nil)
	ctx := context.Background()
	a, err := m.Create(ctx, chatModel.DefaultModelConfig())
	require.NoError(t, err)
	b, err := m.Create(ctx, chatModel.DefaultModelConfig())
	require.NoError(t, err)

	_, err = m.RunTurn(ctx, a.ID, agent.Input{Text: "only in a"}, discard)
	require.NoError(t, err)

	assert.Len(t, a.agent.Memory().Load(), 2)
	assert.Empty(t, b.agent.Memory().Load())
	assert.Equal(t, 2, m.Count())
}

func TestManager_EmitErrorAbandonsTurn(t *testing.T) {
	m := NewManager(factoryFor(&echoChat{}), nil)
	ctx := context.Background()
	s, err := m.Create(ctx, chatModel.DefaultModelConfig())
	require.NoError(t, err)
	gone := errors.New("client closed")

	_, err = m.RunTurn(ctx, s.ID, agent.Input{Text: "hi"}, func(agent.Event) error { return gone })

	assert.True(t, errors.Is(err, gone))
	assert.Empty(t, s.agent.Memory().Load())
	assert.Empty(t, s.Transcript())
}

func TestManager_ResetKeepsConfig(t *testing.T) {
	conversations := store.InitConversationStore()
	m := NewManager(factoryFor(&echoChat{}), conversations)
	ctx := context.Background()
	cfg := chatModel.DefaultModelConfig()
	cfg.Temperature = 0.2
	s, err := m.Create(ctx, cfg)
	require.NoError(t, err)
	_, err = m.RunTurn(ctx, s.ID, agent.Input{Text: "hi"}, discard)
	require.NoError(t, err)

	require.NoError(t, m.Reset(ctx, s.ID))

	assert.Empty(t, s.Transcript())
	assert.Empty(t, s.agent.Memory().Load())
	state, found := conversations.GetConversation(ctx, s.ID)
	require.True(t, found)
	assert.Empty(t, state.Turns)
	assert.Equal(t, 0.2, state.Config.Temperature)
}

func TestManager_RestoresExpiredSessionFromStore(t *testing.T) {
	conversations := store.InitConversationStore()
	chat := &echoChat{}
	ctx := context.Background()

	first := NewManager(factoryFor(chat), conversations)
	s, err := first.Create(ctx, chatModel.DefaultModelConfig())
	require.NoError(t, err)
	_, err = first.RunTurn(ctx, s.ID, agent.Input{Text: "remember me"}, discard)
	require.NoError(t, err)

	// a second manager shares nothing but the store, like a restarted server
	second := NewManager(factoryFor(chat), conversations)
	transcript, err := second.Transcript(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 2)
	assert.Equal(t, "remember me", transcript[0].Content)

	restored, err := second.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []chatModel.Message{
		{Role: chatModel.RoleHuman, Content: "remember me"},
		{Role: chatModel.RoleAI, Content: "echo: remember me"},
	}, restored.agent.Memory().Load())
}
