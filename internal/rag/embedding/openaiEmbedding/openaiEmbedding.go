package openaiEmbedding

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/customHttpClient"
	"github.com/akolanti/SDKAssistant/internal/rag/embedding"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	once            sync.Once
	embeddingClient embedding.Embedder
)

type client struct {
	api    openai.Client
	model  string
	logger *logger_i.Logger
}

// GetOpenAIEmbeddingClient returns the process wide embedder. Nil when no key is configured.
func GetOpenAIEmbeddingClient(modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		if apikey == "" {
			logger_i.NewLogger("openai_embedding").Error("OpenAI API key is missing")
			return
		}
		embeddingClient = NewOpenAIEmbedder(modelName,
			option.WithAPIKey(apikey),
			option.WithHTTPClient(customHttpClient.GetClient()),
		)
	})
	return embeddingClient
}

func NewOpenAIEmbedder(modelName string, opts ...option.RequestOption) embedding.Embedder {
	return &client{
		api:    openai.NewClient(opts...),
		model:  modelName,
		logger: logger_i.NewLogger("openai_embedding"),
	}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.BatchEmbedding(ctx, []string{query}, false)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// BatchEmbedding embeds all chunks in one request. The asynchronous mode is a Google feature,
// isHugeDataSet is ignored here.
func (c *client) BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error) {
	log := c.logger.WithTrace(ctx)
	if len(chunks) == 0 {
		return nil, errors.New("nothing to embed")
	}

	res, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: chunks},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: openai.Int(int64(config.EmbeddingOutputDimensionality)),
	})
	if err != nil {
		log.Error("Error getting Embeddings from OpenAI", "error", err)
		return nil, err
	}
	if len(res.Data) != len(chunks) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(res.Data), len(chunks))
	}

	results := make([][]float32, len(chunks))
	for _, d := range res.Data {
		if d.Index < 0 || int(d.Index) >= len(results) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vector := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vector[i] = float32(v)
		}
		results[d.Index] = vector
	}
	return results, nil
}
