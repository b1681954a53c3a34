package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/job"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

// MockIndexer to track if jobs are executed
type MockIndexer struct {
	ProcessedCount int32
	OnRebuild      func(ctx context.Context, j jobModel.Job) jobModel.Job
}

func (m *MockIndexer) RebuildIndex(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.ProcessedCount, 1)
	if m.OnRebuild != nil {
		return m.OnRebuild(ctx, j)
	}
	j.CurrentStep = jobModel.Complete
	return j
}

type MockJobStore struct {
	mu        sync.Mutex
	saved     []jobModel.Job
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].Id == jobId {
			return m.saved[i], true
		}
	}
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	m.mu.Lock()
	m.saved = append(m.saved, j)
	m.mu.Unlock()
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

func (m *MockJobStore) statuses(jobId string) []jobModel.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []jobModel.JobStatus
	for _, j := range m.saved {
		if j.Id == jobId {
			out = append(out, j.Status)
		}
	}
	return out
}

func TestWorkerPool_Flow(t *testing.T) {
	store := &MockJobStore{}
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          store,
	}
	mockIndexer := &MockIndexer{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	atomic.StoreInt64(&currentWorkerCount, 0)
	InitServices(jobSvc, mockIndexer)
	InitWorkerPool(stopChan, wg)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		jobSvc.DispatcherChannel <- true

		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a reindex job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "test-1", JobType: jobModel.JobTypeReindex, Status: jobModel.JobStatusQueued}
		jobSvc.JobChannel <- testJob

		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockIndexer.ProcessedCount)
		if processed != 1 {
			t.Errorf("Expected 1 job processed, got %d", processed)
		}
		statuses := store.statuses("test-1")
		if len(statuses) != 2 || statuses[0] != jobModel.JobStatusRunning || statuses[1] != jobModel.JobStatusComplete {
			t.Errorf("unexpected status history %v", statuses)
		}
		final, _ := store.GetJob(context.Background(), "test-1")
		if final.EndTime.IsZero() {
			t.Error("EndTime not set on a finished job")
		}
	})

	t.Run("Failed job ends in error state", func(t *testing.T) {
		mockIndexer.OnRebuild = func(ctx context.Context, j jobModel.Job) jobModel.Job {
			j.CurrentStep = jobModel.Error
			j.Error = jobModel.JobError{Code: 500, Message: "Internal Server Error", Retry: true}
			return j
		}
		jobSvc.JobChannel <- jobModel.Job{Id: "test-2", JobType: jobModel.JobTypeReindex}

		time.Sleep(50 * time.Millisecond)

		final, found := store.GetJob(context.Background(), "test-2")
		if !found || final.Status != jobModel.JobStatusError {
			t.Errorf("expected error status, got %+v", final)
		}
		if !final.Error.Retry {
			t.Error("retry flag lost")
		}
	})

	t.Run("Unknown job type is rejected", func(t *testing.T) {
		before := atomic.LoadInt32(&mockIndexer.ProcessedCount)
		jobSvc.JobChannel <- jobModel.Job{Id: "test-3", JobType: "Chat"}

		time.Sleep(50 * time.Millisecond)

		if atomic.LoadInt32(&mockIndexer.ProcessedCount) != before {
			t.Error("indexer ran for an unknown job type")
		}
		final, _ := store.GetJob(context.Background(), "test-3")
		if final.Status != jobModel.JobStatusError {
			t.Errorf("status = %s, want %s", final.Status, jobModel.JobStatusError)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 0)
	defer atomic.StoreInt64(&minWorkerCount, 1)
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
	}
	InitServices(jobSvc, &MockIndexer{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	createWorker()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Minute):
		t.Fatal("idle worker did not retire")
	}

	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 0 {
		t.Errorf("Worker should have timed out and retired, but count is %d", count)
	}
}
