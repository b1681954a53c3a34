package session

import (
	"context"
	"time"

	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Manager holds the live sessions of the web chat. Idle sessions expire from memory after
// config.SessionTTL; when a conversation store is set they are rebuilt from it on next use.
type Manager struct {
	cache   *cache.Cache
	store   jobModel.ConversationStore
	factory AgentFactory
	now     func() time.Time
	logger  *logger_i.Logger
}

// NewManager accepts a nil store, sessions then live only in memory.
func NewManager(factory AgentFactory, store jobModel.ConversationStore) *Manager {
	c := cache.New(config.SessionTTL, config.SessionCleanupInterval)
	c.OnEvicted(func(string, interface{}) {
		metrics.DecrementActiveSessions()
	})
	return &Manager{
		cache:   c,
		store:   store,
		factory: factory,
		now:     time.Now,
		logger:  logger_i.NewLogger("Session Manager"),
	}
}

// Create starts a conversation. An invalid configuration returns a ValidationError.
func (m *Manager) Create(ctx context.Context, cfg chatModel.ModelConfig) (*Session, error) {
	a, err := m.factory(cfg)
	if err != nil {
		return nil, err
	}
	s := newSession(uuid.NewString(), a, m.now())
	m.put(s)
	m.persist(ctx, s)
	m.logger.WithTrace(ctx).Info("Session created", "sessionId", s.ID, "model", cfg.Model)
	return s, nil
}

// Get returns a live session, reloading it from the store when it has expired from memory.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if v, ok := m.cache.Get(id); ok {
		s := v.(*Session)
		m.cache.SetDefault(id, s)
		return s, nil
	}
	if m.store == nil {
		return nil, ErrSessionNotFound
	}

	state, found := m.store.GetConversation(ctx, id)
	if !found {
		return nil, ErrSessionNotFound
	}
	a, err := m.factory(state.Config)
	if err != nil {
		m.logger.WithTrace(ctx).Error("Stored session has an invalid config", "sessionId", id, "error", err)
		return nil, ErrSessionNotFound
	}
	s := newSession(id, a, state.UpdatedAt)
	s.restore(state)

	// another request may have reloaded it meanwhile
	if err = m.cache.Add(id, s, cache.DefaultExpiration); err != nil {
		if v, ok := m.cache.Get(id); ok {
			return v.(*Session), nil
		}
	}
	metrics.IncrementActiveSessions()
	m.logger.WithTrace(ctx).Info("Session restored", "sessionId", id, "turns", len(state.Turns))
	return s, nil
}

// RunTurn streams one turn of the session to emit. A turn already running on the session
// fails with ErrSessionBusy. An error from emit stops the turn without committing it.
func (m *Manager) RunTurn(ctx context.Context, id string, in agent.Input, emit func(agent.Event) error) (agent.Result, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return agent.Result{}, err
	}
	unlock, err := s.tryLock()
	if err != nil {
		metrics.CaptureChatTurn("busy")
		return agent.Result{}, err
	}
	defer unlock()

	log := m.logger.WithTrace(ctx).With("sessionId", id)
	for event, err := range s.agent.Stream(ctx, in) {
		if err != nil {
			log.Error("Turn failed", "error", err)
			metrics.CaptureChatTurn("error")
			return agent.Result{}, err
		}
		if event.Type == agent.EventDone {
			res := *event.Result
			s.record(m.now(), in.Text, res)
			m.persist(ctx, s)
			metrics.CaptureChatTurn("done")
			return res, emit(event)
		}
		if err = emit(event); err != nil {
			log.Warn("Client went away, turn abandoned", "error", err)
			metrics.CaptureChatTurn("abandoned")
			return agent.Result{}, err
		}
	}
	return agent.Result{}, ctx.Err()
}

func (m *Manager) Transcript(ctx context.Context, id string) ([]chatModel.TranscriptEntry, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Transcript(), nil
}

// Reset clears the memory and transcript of a session, keeping its configuration.
func (m *Manager) Reset(ctx context.Context, id string) error {
	s, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	unlock, err := s.tryLock()
	if err != nil {
		return err
	}
	defer unlock()

	s.reset(m.now())
	m.persist(ctx, s)
	m.logger.WithTrace(ctx).Info("Session reset", "sessionId", id)
	return nil
}

func (m *Manager) Count() int {
	return m.cache.ItemCount()
}

func (m *Manager) put(s *Session) {
	metrics.IncrementActiveSessions()
	m.cache.SetDefault(s.ID, s)
}

func (m *Manager) persist(ctx context.Context, s *Session) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveConversation(context.WithoutCancel(ctx), s.ID, s.state()); err != nil {
		m.logger.WithTrace(ctx).Error("Failed to persist session", "sessionId", s.ID, "error", err)
	}
}
