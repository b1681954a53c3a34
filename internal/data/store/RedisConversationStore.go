package store

import (
	"context"
	"errors"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/data/redisStore"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

const conversationKeyPrefix = "conversation:"

// RedisConversationStore keeps web sessions alive across restarts.
// Every save refreshes the key TTL.
type RedisConversationStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisConversationStore(ctx context.Context, settings config.Settings) *RedisConversationStore {
	s := redisStore.GetRedisStore(ctx, settings, config.RedisConversationStore)
	if s == nil {
		return nil
	}
	return NewRedisConversationStore(s)
}

func NewRedisConversationStore(store *redisStore.Store) *RedisConversationStore {
	return &RedisConversationStore{
		store:  store,
		logger: logger_i.NewLogger("ConversationStore"),
	}
}

func (s *RedisConversationStore) SaveConversation(ctx context.Context, id string, state jobModel.ConversationState) error {
	if err := s.store.SetJSON(ctx, conversationKeyPrefix+id, state, config.RedisConversationStoreTTL); err != nil {
		s.logger.WithTrace(ctx).Error("Error saving conversation", "sessionId", id, "error", err)
		return err
	}
	s.logger.WithTrace(ctx).Debug("Saved conversation to Redis", "sessionId", id, "turns", len(state.Turns))
	return nil
}

func (s *RedisConversationStore) GetConversation(ctx context.Context, id string) (jobModel.ConversationState, bool) {
	var state jobModel.ConversationState
	log := s.logger.WithTrace(ctx).With("sessionId", id)

	err := s.store.GetJSON(ctx, conversationKeyPrefix+id, &state)
	if errors.Is(err, redisStore.ErrNotFound) {
		return state, false
	} else if err != nil {
		log.Error("Error reading conversation from Redis", "error", err)
		return state, false
	}
	return state, true
}

func (s *RedisConversationStore) DeleteConversation(ctx context.Context, id string) {
	if err := s.store.Del(ctx, conversationKeyPrefix+id); err != nil {
		s.logger.WithTrace(ctx).Error("Error deleting conversation", "sessionId", id, "error", err)
	}
}
