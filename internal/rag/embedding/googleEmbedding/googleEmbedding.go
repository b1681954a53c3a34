package googleEmbedding

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akolanti/SDKAssistant/internal/adapter/utils"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/rag/embedding"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"google.golang.org/genai"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client
var dimension int32 = config.EmbeddingOutputDimensionality

const retryAfter = 5 * time.Second

type client struct {
	genAi *genai.Client
	model string
}

func newGoogleEmbedder(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
	}
	if c != nil {
		embeddingClient = &client{
			genAi: c,
			model: modelName,
		}
		logger.Debug("Google Embedding model name: " + modelName)
		logger.Info("Google Embedding client created")
		go closeClient(ctx, embeddingClient)
	}
}

func closeClient(ctx context.Context, embeddingClient *client) {
	<-ctx.Done()
	logger.Info("Closing Google Embedding client")
	embeddingClient.genAi = nil
	embeddingClient.model = ""
}

func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("google_embedding")
		newGoogleEmbedder(ctx, modelName, apikey)
	})

	//if init still fails
	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := logger.WithTrace(ctx)
	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(query), &genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_QUERY"})
	if err != nil {
		log.Error("Error getting regular Embeddings from Google", "error", err)
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, errors.New("google returned no embedding")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string, isLargeDataSet bool) ([][]float32, error) {
	log := logger.WithTrace(ctx).With("chunks", len(chunks))

	if !isLargeDataSet {
		res, err := c.doCall(ctx, getContent(chunks))
		if err != nil && doRetry(err, log) {
			log.Debug("Retrying in 5 seconds")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryAfter):
			}
			res, err = c.doCall(ctx, getContent(chunks))
		}
		if err != nil {
			log.Error("Error getting Embeddings from Google", "error", err)
			return nil, err
		}

		embeddingResults := make([][]float32, 0, len(res.Embeddings))
		for _, r := range res.Embeddings {
			embeddingResults = append(embeddingResults, r.Values)
		}
		return embeddingResults, nil
	}

	source := genai.EmbeddingsBatchJobSource{InlinedRequests: getInlinedBatchRequests(chunks)}
	displayName := utils.GetNewUUID()

	log = log.With("batchJobName", displayName)
	conf := genai.CreateEmbeddingsBatchJobConfig{DisplayName: displayName}
	batchJob, err := c.genAi.Batches.CreateEmbeddings(ctx, &c.model, &source, &conf)
	if err != nil {
		log.Error("Error getting batch Embeddings from Google", "error", err)
		return nil, err
	}

	answer, err := c.pollForAnswer(ctx, batchJob.Name, log)
	if err != nil {
		return nil, err
	}
	return downloadAnswerFromClient(answer, log)
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
}
