package store

import (
	"context"
	"errors"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/data/redisStore"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

const jobKeyPrefix = "job:"

type RedisJobStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisJobStore returns nil when redis is not reachable.
func GetRedisJobStore(ctx context.Context, settings config.Settings) *RedisJobStore {
	s := redisStore.GetRedisStore(ctx, settings, config.RedisJobStore)
	if s == nil {
		return nil
	}
	return NewRedisJobStore(s)
}

func NewRedisJobStore(store *redisStore.Store) *RedisJobStore {
	return &RedisJobStore{
		store:  store,
		logger: logger_i.NewLogger("JobStore"),
	}
}

func (s *RedisJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	log := s.logger.WithTrace(ctx).With("job Id", job.Id)
	log.Debug("saving job")
	err := s.store.SetJSON(ctx, jobKeyPrefix+job.Id, job, config.RedisJobStoreTTL)
	if err == nil {
		log.Debug("Saved job to Redis")
	}
	return err
}

func (s *RedisJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	var job jobModel.Job
	log := s.logger.WithTrace(ctx).With("job Id", jobId)
	log.Debug("getting job")
	err := s.store.GetJSON(ctx, jobKeyPrefix+jobId, &job)
	if errors.Is(err, redisStore.ErrNotFound) {
		return job, false
	} else if err != nil {
		log.Error("Error reading job from Redis", "error", err)
		return job, false
	}

	log.Debug("Job found in Redis")
	return job, true
}

func (s *RedisJobStore) DeleteJob(ctx context.Context, jobID string) {
	err := s.store.Del(ctx, jobKeyPrefix+jobID)
	if err != nil {
		s.logger.WithTrace(ctx).Error("Error deleting job from Redis", "jobId", jobID, "error", err)
		return
	}
	s.logger.Debug("Job deleted from Redis", "jobId", jobID)
}
