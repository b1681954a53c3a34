package store

import (
	"context"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/patrickmn/go-cache"
)

type InMemoryConversationStore struct {
	conversations *cache.Cache
	logger        *logger_i.Logger
}

func InitConversationStore() *InMemoryConversationStore {
	return NewInMemoryConversationStore(config.RedisConversationStoreTTL)
}

// NewInMemoryConversationStore keeps each conversation for ttl after its last save.
func NewInMemoryConversationStore(ttl time.Duration) *InMemoryConversationStore {
	return &InMemoryConversationStore{
		conversations: cache.New(ttl, config.SessionCleanupInterval),
		logger:        logger_i.NewLogger("InMem ConversationStore"),
	}
}

func (store *InMemoryConversationStore) SaveConversation(ctx context.Context, id string, state jobModel.ConversationState) error {
	store.conversations.Set(id, state, cache.DefaultExpiration)
	store.logger.WithTrace(ctx).Debug("Saved conversation", "sessionId", id, "turns", len(state.Turns))
	return nil
}

func (store *InMemoryConversationStore) GetConversation(ctx context.Context, id string) (jobModel.ConversationState, bool) {
	item, found := store.conversations.Get(id)
	if !found {
		return jobModel.ConversationState{}, false
	}
	return item.(jobModel.ConversationState), true
}

func (store *InMemoryConversationStore) DeleteConversation(ctx context.Context, id string) {
	store.conversations.Delete(id)
}
