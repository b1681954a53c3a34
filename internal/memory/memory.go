package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/internal/rag/llm"
	"github.com/akolanti/SDKAssistant/internal/rag/tokenizer"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

const SummaryPrompt = `Progressively summarize the lines of conversation provided, adding onto the previous summary returning a new summary.

EXAMPLE
Current summary:
The human asks what the AI thinks of artificial intelligence. The AI thinks artificial intelligence is a force for good.

New lines of conversation:
Human: Why do you think artificial intelligence is a force for good?
AI: Because artificial intelligence will help humans reach their full potential.

New summary:
The human asks what the AI thinks of artificial intelligence. The AI thinks artificial intelligence is a force for good because it will help humans reach their full potential.
END OF EXAMPLE

Current summary:
%s

New lines of conversation:
%s

New summary:`

type TokenCounter interface {
	CountTokens(text string) int
}

// State is the persisted form of a memory.
type State struct {
	Summary    string           `json:"summary,omitempty"`
	HasSummary bool             `json:"has_summary,omitempty"`
	Turns      []chatModel.Turn `json:"turns"`
}

// Memory is the conversation buffer of one agent. When the buffer grows over the model's
// memory budget the oldest whole turns are folded into a single summary.
type Memory struct {
	mu         sync.Mutex
	model      string
	limit      int
	counter    TokenCounter
	summarizer llm.Completer

	summary    string
	hasSummary bool
	turns      []chatModel.Turn

	logger *logger_i.Logger
}

func New(model string, counter TokenCounter, summarizer llm.Completer) *Memory {
	return &Memory{
		model:      model,
		limit:      tokenizer.MemoryTokenLimit(model),
		counter:    counter,
		summarizer: summarizer,
		logger:     logger_i.NewLogger("Memory").With("model", model),
	}
}

// Append commits a finished turn and summarizes old turns if the budget is exceeded.
// A failed summarization keeps every turn, the next Append tries again.
func (m *Memory) Append(ctx context.Context, human string, ai string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns = append(m.turns, chatModel.Turn{Human: human, AI: ai})
	m.prune(ctx)
}

// Seed replays prior turns through Append, oldest first.
func (m *Memory) Seed(ctx context.Context, turns []chatModel.Turn) {
	for _, t := range turns {
		m.Append(ctx, t.Human, t.AI)
	}
}

// Load returns the summary, if any, followed by the turns as alternating messages.
func (m *Memory) Load() []chatModel.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	messages := make([]chatModel.Message, 0, 2*len(m.turns)+1)
	for _, t := range m.turns {
		messages = append(messages,
			chatModel.Message{Role: chatModel.RoleHuman, Content: t.Human},
			chatModel.Message{Role: chatModel.RoleAI, Content: t.AI},
		)
	}
	if !m.hasSummary {
		return messages
	}

	summaryRole := chatModel.RoleAI
	if len(messages) > 0 && messages[0].Role == chatModel.RoleAI {
		summaryRole = chatModel.RoleHuman
	}
	return append([]chatModel.Message{{Role: summaryRole, Content: m.summary}}, messages...)
}

func (m *Memory) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	turns := make([]chatModel.Turn, len(m.turns))
	copy(turns, m.turns)
	return State{Summary: m.summary, HasSummary: m.hasSummary, Turns: turns}
}

func (m *Memory) Restore(state State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.summary = state.Summary
	m.hasSummary = state.HasSummary
	m.turns = make([]chatModel.Turn, len(state.Turns))
	copy(m.turns, state.Turns)
}

func (m *Memory) Clear() {
	m.Restore(State{})
}

// TokenCount is the size of everything Load returns.
func (m *Memory) TokenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokenCount(m.turns)
}

func (m *Memory) tokenCount(turns []chatModel.Turn) int {
	total := 0
	if m.hasSummary {
		total += m.counter.CountTokens(m.summary)
	}
	for _, t := range turns {
		total += m.counter.CountTokens(t.Human) + m.counter.CountTokens(t.AI)
	}
	return total
}

// prune folds the oldest turns into the summary until the turns plus the new summary fit the
// limit. A summary that alone exceeds the limit leaves no turns.
func (m *Memory) prune(ctx context.Context) {
	for len(m.turns) > 0 && m.tokenCount(m.turns) > m.limit {
		cut := 1
		for cut < len(m.turns) && m.tokenCount(m.turns[cut:]) > m.limit {
			cut++
		}
		pruned := m.turns[:cut]

		summary, err := m.summarize(ctx, pruned)
		if err != nil {
			m.logger.WithTrace(ctx).Error("SUMMARIZATION_FAILURE", "turns", len(pruned), "error", err)
			return
		}

		m.summary = summary
		m.hasSummary = true
		m.turns = append([]chatModel.Turn(nil), m.turns[cut:]...)
		m.logger.WithTrace(ctx).Debug("Memory summarized", "pruned turns", cut, "kept turns", len(m.turns))
	}
}

func (m *Memory) summarize(ctx context.Context, turns []chatModel.Turn) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("memory_summary", time.Since(start)) }()

	var lines strings.Builder
	for i, t := range turns {
		if i > 0 {
			lines.WriteString("\n")
		}
		lines.WriteString("Human: " + t.Human + "\nAI: " + t.AI)
	}

	settings := llm.Settings{
		Model:       m.model,
		Temperature: 0,
		TopP:        config.DefaultTopP,
		MaxTokens:   config.MemorySummaryMaxTokens,
	}
	summary, err := m.summarizer.Complete(ctx, fmt.Sprintf(SummaryPrompt, m.summary, lines.String()), settings)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}
