package session

import (
	"errors"
	"sync"
	"time"

	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/memory"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("a message is already being processed in this session")
)

// AgentFactory builds a fresh agent with its own memory for one conversation.
type AgentFactory func(cfg chatModel.ModelConfig) (*agent.Agent, error)

// Session is one web conversation. turn guards the agent, mu guards the transcript.
type Session struct {
	ID string

	turn  sync.Mutex
	agent *agent.Agent

	mu         sync.RWMutex
	transcript []chatModel.TranscriptEntry
	updatedAt  time.Time
}

func newSession(id string, a *agent.Agent, now time.Time) *Session {
	return &Session{ID: id, agent: a, updatedAt: now}
}

func (s *Session) Config() chatModel.ModelConfig {
	return s.agent.Config()
}

// Transcript returns a copy of the displayed messages.
func (s *Session) Transcript() []chatModel.TranscriptEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chatModel.TranscriptEntry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) record(now time.Time, text string, res agent.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript,
		chatModel.TranscriptEntry{Role: chatModel.RoleHuman, Content: text, CreatedAt: now},
		chatModel.TranscriptEntry{Role: chatModel.RoleAI, Content: res.Output, Actions: res.Actions, CreatedAt: now},
	)
	s.updatedAt = now
}

func (s *Session) reset(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
	s.updatedAt = now
	s.agent.Memory().Clear()
}

func (s *Session) state() jobModel.ConversationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mem := s.agent.Memory().Snapshot()
	return jobModel.ConversationState{
		Config:     s.agent.Config(),
		Summary:    mem.Summary,
		HasSummary: mem.HasSummary,
		Turns:      mem.Turns,
		Transcript: append([]chatModel.TranscriptEntry(nil), s.transcript...),
		UpdatedAt:  s.updatedAt,
	}
}

func (s *Session) restore(state jobModel.ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = state.Transcript
	s.updatedAt = state.UpdatedAt
	s.agent.Memory().Restore(memory.State{
		Summary:    state.Summary,
		HasSummary: state.HasSummary,
		Turns:      state.Turns,
	})
}

// tryLock claims the session for one turn.
func (s *Session) tryLock() (unlock func(), err error) {
	if !s.turn.TryLock() {
		return nil, ErrSessionBusy
	}
	return s.turn.Unlock, nil
}
