package googleEmbedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const pollInterval = 30 * time.Second

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))

	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}

// doRetry reports whether err is a rate limit, the only failure worth one more try.
func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		log.Error("Rate limit hit! ", "error", err)
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		log.Error("Rate limit hit! ", "error", err)
		return true
	}
	return false
}

func getInlinedBatchRequests(chunks []string) *genai.EmbedContentBatch {
	conf := genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"}
	return &genai.EmbedContentBatch{
		Config:   &conf,
		Contents: getContent(chunks),
	}
}

func (c *client) pollForAnswer(ctx context.Context, batchJobName string, log *logger_i.Logger) (*genai.BatchJob, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	log.Debug("pollForAnswer")
	for {
		select {
		case <-ctx.Done():
			log.Error("pollForAnswer cancelled", "error:", ctx.Err())
			return nil, ctx.Err()

		case <-ticker.C:
			bJob, err := c.genAi.Batches.Get(ctx, batchJobName, nil)
			if err != nil {
				log.Error("Error getting batch job:", "error", err)
				continue
			}

			//https://pkg.go.dev/google.golang.org/genai@v1.41.1#JobState
			switch bJob.State {
			case "JOB_STATE_SUCCEEDED":
				log.Debug("batch job succeeded")
				return bJob, nil
			case "JOB_STATE_FAILED", "JOB_STATE_CANCELLED", "JOB_STATE_EXPIRED", "JOB_STATE_PARTIALLY_SUCCEEDED":
				log.Error("batch job failed", "state", bJob.State)
				return nil, fmt.Errorf("embedding batch job ended in state %s", bJob.State)
			}
			//all other states we will wait for context to expire or job to end
		}
	}
}

// downloadAnswerFromClient fails when any inlined result is missing, the index needs one vector per chunk.
func downloadAnswerFromClient(answer *genai.BatchJob, log *logger_i.Logger) ([][]float32, error) {
	if answer.Dest == nil || len(answer.Dest.InlinedEmbedContentResponses) == 0 {
		return nil, errors.New("batch job returned no embeddings")
	}
	res := answer.Dest.InlinedEmbedContentResponses

	results := make([][]float32, 0, len(res))
	for i, r := range res {
		if r == nil || r.Error != nil || r.Response == nil || r.Response.Embedding == nil {
			log.Error("Error with a particular result in batch embedding", "index", i)
			return nil, fmt.Errorf("embedding %d of the batch failed", i)
		}
		results = append(results, r.Response.Embedding.Values)
	}
	return results, nil
}
