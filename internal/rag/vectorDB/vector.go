package vectorDB

import (
	"context"

	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
)

type DataProcessor interface {
	// Search returns the payloads of the limit nearest chunks, best first. Vectors are not returned.
	Search(ctx context.Context, collectionName string, vectorVal []float32, limit uint64) ([]commonModels.ChunkMetadata, error)

	CreateCollection(ctx context.Context, collectionName string) error
	// RecreateCollection drops the collection if present and creates it empty
	RecreateCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error
}

// SemanticCache stores answers keyed by the embedding of the question that produced them.
type SemanticCache interface {
	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error
}
