package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	jobmodel "github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, jobTimeout)
	defer cancel()
	log := logger.WithTrace(ctx).With("jobId", job.Id)
	log.Debug("Processing job", "type", job.JobType)

	job.Status = jobmodel.JobStatusRunning
	saveJobState(ctx, job)

	switch job.JobType {
	case jobmodel.JobTypeReindex:
		job = _indexer.RebuildIndex(ctx, job)
	default:
		log.Error("Unknown job type", "type", job.JobType)
		job.CurrentStep = jobmodel.Error
		job.Error = jobmodel.JobError{Code: 400, Message: "Unknown job type", Retry: false}
	}

	job.EndTime = time.Now()
	if job.CurrentStep == jobmodel.Error {
		job.Status = jobmodel.JobStatusError
	} else {
		job.Status = jobmodel.JobStatusComplete
	}
	saveJobState(ctx, job)
	log.Info("Job finished", "status", job.Status, "duration", time.Since(start))
}

func removeWorker(reason string) {
	count := atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", count)
	metrics.DecrementActiveWorkerCount()
	workerWaitGroup.Done()
}

func saveJobState(ctx context.Context, job jobmodel.Job) {
	if err := _jobService.JobStore.SaveJob(context.WithoutCancel(ctx), job); err != nil {
		logger.WithTrace(ctx).Error("Failed to update job state", "jobId", job.Id, "error", err)
	}
}
