package handlers

import (
	"context"
	"sync"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/job"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

type newJobData struct {
	id            string
	traceId       string
	documentsName string
	documentsPath string
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logger_i.NewLogger("JobHandler")
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "jobId", newJob.id).Info("Creating reindex job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, newJob.traceId)
	log := logJH.WithTrace(ctxC).With("jobId", newJob.id)

	_job := job.NewReindexJob(newJob.id, newJob.traceId, newJob.documentsName, newJob.documentsPath)
	requestCount, err := h.service.Enqueue(ctxC, _job)
	if err != nil {
		log.Error("Failed to save queued job", "error", err)
	}
	log.Info("Created new job", "requestCount", requestCount)
}
