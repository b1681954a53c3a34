package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/data/redisStore"
	"github.com/akolanti/SDKAssistant/internal/data/store"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisJobStore(t *testing.T) (*store.RedisJobStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.NewRedisJobStore(redisStore.NewTestStore(client)), mr
}

func TestRedisJobStore_Lifecycle(t *testing.T) {
	jobStore, mr := newRedisJobStore(t)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:          jobID,
		JobType:     jobModel.JobTypeReindex,
		Status:      jobModel.JobStatusRunning,
		CurrentStep: jobModel.Splitting,
		JobPayload: jobModel.JobPayload{
			DocumentsFileName: "documents.json",
			DocumentCount:     12,
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		err := jobStore.SaveJob(ctx, testJob)
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}

		if retrievedJob.JobPayload.DocumentCount != testJob.JobPayload.DocumentCount {
			t.Errorf("Data mismatch! Got %d, want %d",
				retrievedJob.JobPayload.DocumentCount, testJob.JobPayload.DocumentCount)
		}
		if retrievedJob.CurrentStep != jobModel.Splitting {
			t.Errorf("step = %q, want %q", retrievedJob.CurrentStep, jobModel.Splitting)
		}
	})

	t.Run("TTL is set", func(t *testing.T) {
		if ttl := mr.TTL("job:" + jobID); ttl != config.RedisJobStoreTTL {
			t.Errorf("ttl = %v, want %v", ttl, config.RedisJobStoreTTL)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		_, found := jobStore.GetJob(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Corrupt value is not found", func(t *testing.T) {
		_ = mr.Set("job:broken", "{not json")
		if _, found := jobStore.GetJob(ctx, "broken"); found {
			t.Error("Expected found=false for a corrupt value")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)

		if mr.Exists("job:" + jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_Race(t *testing.T) {
	jobStore, _ := newRedisJobStore(t)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")
	job := jobModel.Job{Id: "race-job"}

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = jobStore.SaveJob(ctx, job)
			_, _ = jobStore.GetJob(ctx, "race-job")
		}()
	}
	wg.Wait()

	if _, found := jobStore.GetJob(ctx, "race-job"); !found {
		t.Error("job missing after concurrent writes")
	}
}

func TestInMemoryJobStore(t *testing.T) {
	jobStore := store.InitInMemoryJobStore()
	ctx := context.Background()

	if err := jobStore.SaveJob(ctx, jobModel.Job{Id: "a", Status: jobModel.JobStatusQueued}); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	job, found := jobStore.GetJob(ctx, "a")
	if !found || job.Status != jobModel.JobStatusQueued {
		t.Errorf("got %+v, found=%v", job, found)
	}

	jobStore.DeleteJob(ctx, "a")
	if _, found = jobStore.GetJob(ctx, "a"); found {
		t.Error("job still present after delete")
	}
}

func TestInMemoryJobStore_Expires(t *testing.T) {
	jobStore := store.NewInMemoryJobStore(20 * time.Millisecond)
	ctx := context.Background()

	_ = jobStore.SaveJob(ctx, jobModel.Job{Id: "short-lived"})
	time.Sleep(40 * time.Millisecond)

	if _, found := jobStore.GetJob(ctx, "short-lived"); found {
		t.Error("expired job still returned")
	}
}
