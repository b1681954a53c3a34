package store

import (
	"context"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/patrickmn/go-cache"
)

// InMemoryJobStore stands in for redis when it is offline. Jobs expire like they do in redis.
type InMemoryJobStore struct {
	jobs   *cache.Cache
	logger *logger_i.Logger
}

func InitInMemoryJobStore() *InMemoryJobStore {
	return NewInMemoryJobStore(config.RedisJobStoreTTL)
}

func NewInMemoryJobStore(ttl time.Duration) *InMemoryJobStore {
	return &InMemoryJobStore{
		jobs:   cache.New(ttl, config.SessionCleanupInterval),
		logger: logger_i.NewLogger("InMem JobStore"),
	}
}

func (store *InMemoryJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	store.jobs.Set(job.Id, job, cache.DefaultExpiration)
	store.logger.WithTrace(ctx).Debug("Saved job to store", "jobId", job.Id, "status", job.Status)
	return nil
}

func (store *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	item, found := store.jobs.Get(jobId)
	if !found {
		return jobModel.Job{}, false
	}
	return item.(jobModel.Job), true
}

func (store *InMemoryJobStore) DeleteJob(ctx context.Context, jobID string) {
	store.jobs.Delete(jobID)
}
