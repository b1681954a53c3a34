package job

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/metrics"
)

// Service is the reindex queue shared by the ingest handlers and the worker pool.
type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
	}
}

// NewReindexJob describes a queued rebuild of the documentation index from an uploaded
// documents file.
func NewReindexJob(id string, traceId string, documentsName string, documentsPath string) jobModel.Job {
	return jobModel.Job{
		Id:          id,
		TraceId:     traceId,
		JobType:     jobModel.JobTypeReindex,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.ReindexInit,
		JobPayload: jobModel.JobPayload{
			DocumentsFileName: documentsName,
			DocumentsPath:     documentsPath,
		},
	}
}

// Enqueue saves the job so /status sees it before a worker does, then blocks until the
// queue accepts it and nudges the dispatcher. It returns the number of jobs queued so far.
func (s *Service) Enqueue(ctx context.Context, j jobModel.Job) (int64, error) {
	saveErr := s.JobStore.SaveJob(ctx, j)

	metrics.IncrementJobsInQueue()
	select {
	case s.JobChannel <- j:
	case <-ctx.Done():
		metrics.DecrementJobsInQueue()
		return atomic.LoadInt64(&s.RequestCount), ctx.Err()
	}

	count := atomic.AddInt64(&s.RequestCount, 1)
	metrics.StartDispatcherSignalCount()
	select {
	case s.DispatcherChannel <- true:
	default:
	}
	return count, saveErr
}
