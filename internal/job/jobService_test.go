package job

import (
	"context"
	"testing"

	"github.com/akolanti/SDKAssistant/internal/data/store"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
)

func newService(queue int) *Service {
	return InitJobService(ServiceConfig{
		JobChannel:        make(chan jobModel.Job, queue),
		DispatcherChannel: make(chan bool, 1),
		JobStore:          store.InitInMemoryJobStore(),
	})
}

func TestEnqueue(t *testing.T) {
	s := newService(2)
	ctx := context.Background()

	first := NewReindexJob("job-1", "trace-1", "docs.json", "/tmp/docs.json")
	count, err := s.Enqueue(ctx, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected request count 1, got %d", count)
	}

	saved, found := s.JobStore.GetJob(ctx, "job-1")
	if !found {
		t.Fatal("queued job was not saved")
	}
	if saved.Status != jobModel.JobStatusQueued || saved.CurrentStep != jobModel.ReindexInit {
		t.Errorf("unexpected state %s/%s", saved.Status, saved.CurrentStep)
	}
	if saved.JobPayload.DocumentsPath != "/tmp/docs.json" {
		t.Errorf("payload lost: %+v", saved.JobPayload)
	}

	queued := <-s.JobChannel
	if queued.Id != "job-1" || queued.JobType != jobModel.JobTypeReindex {
		t.Errorf("unexpected queued job %+v", queued)
	}

	// the dispatcher signal never blocks, even when nobody drains it
	s.Enqueue(ctx, NewReindexJob("job-2", "trace-2", "docs.json", "/tmp/docs.json"))
	count, _ = s.Enqueue(ctx, NewReindexJob("job-3", "trace-3", "docs.json", "/tmp/docs.json"))
	if count != 3 {
		t.Errorf("expected request count 3, got %d", count)
	}
	if len(s.DispatcherChannel) != 1 {
		t.Errorf("expected one pending dispatcher signal, got %d", len(s.DispatcherChannel))
	}
}

func TestEnqueue_FullQueueRespectsContext(t *testing.T) {
	s := newService(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count, err := s.Enqueue(ctx, NewReindexJob("job-1", "trace-1", "docs.json", "/tmp/docs.json"))
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if count != 0 {
		t.Errorf("cancelled job must not be counted, got %d", count)
	}
}
