package embedding

import "context"

// Embedder turns text into vectors. Documentation chunks, search queries and cached web
// search queries all go through the same implementation so their vectors are comparable.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	// BatchEmbedding keeps the order of chunks. isHugeDataSet lets providers with an
	// asynchronous batch API use it.
	BatchEmbedding(ctx context.Context, chunks []string, isHugeDataSet bool) ([][]float32, error)
}
