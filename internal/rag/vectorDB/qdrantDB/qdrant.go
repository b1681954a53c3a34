package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var quadrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)

type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQuadrantClient(ctx context.Context, settings config.Settings) *ClientHolder {
	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient(settings)
		if res != nil {
			quadrantInstance = res
			if settings.WebSearchCacheOn {
				initCacheCollection(ctx, quadrantInstance)
			}
			go closeQdrant(ctx, quadrantInstance)
		}
	})

	if quadrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: quadrantInstance,
	}
}

func newClient(settings config.Settings) *qdrant.Client {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     settings.QdrantHost,
		Port:     settings.QdrantPort,
		APIKey:   settings.QdrantAPIKey,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.QdrantConnectionTimeout)
	defer cancel()
	if _, err = client.HealthCheck(ctx); err != nil {
		logger.Error("Qdrant is offline", "host", settings.QdrantHost, "port", settings.QdrantPort, "error:", err)
		_ = client.Close()
		return nil
	}
	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) Search(ctx context.Context, collectionName string, vectorFloat []float32, limit uint64) ([]commonModels.ChunkMetadata, error) {
	loggr := logger.WithTrace(ctx)
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vectorFloat...),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(false),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	matches := make([]commonModels.ChunkMetadata, 0, len(result))
	for _, hit := range result {
		matches = append(matches, fromPayload(hit.Payload, hit.Score))
	}
	loggr.Debug("Found matches", "count", len(matches))
	return matches, nil
}

func (db *ClientHolder) CreateCollection(ctx context.Context, collectionName string) error {
	return createCollection(ctx, db.QObj, collectionName)
}

func (db *ClientHolder) RecreateCollection(ctx context.Context, collectionName string) error {
	exists, err := db.QObj.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		logger.WithTrace(ctx).Info("Dropping collection", "collection", collectionName)
		if err = db.QObj.DeleteCollection(ctx, collectionName); err != nil {
			return fmt.Errorf("dropping collection: %w", err)
		}
	}
	return createCollection(ctx, db.QObj, collectionName)
}

func (db *ClientHolder) UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(toPayload(chunk)),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

// toPayload keeps the whole split content so a hit can be shown without a second lookup.
func toPayload(chunk commonModels.DocChunk) map[string]any {
	return map[string]any{
		"source_path":       chunk.SourcePath,
		"source_url":        chunk.SourceURL,
		"documentation_url": chunk.DocumentationURL,
		"content":           chunk.Content,
		"type":              string(chunk.Type),
		"split_part":        chunk.SplitPart,
		"chunk":             chunk.Chunk,
		"chunk_id":          chunk.ChunkId,
		"document":          chunk.Text,
		"embedding_text":    chunk.EmbeddingText,
	}
}

func fromPayload(payload map[string]*qdrant.Value, score float32) commonModels.ChunkMetadata {
	return commonModels.ChunkMetadata{
		SourcePath:       payload["source_path"].GetStringValue(),
		SourceURL:        payload["source_url"].GetStringValue(),
		DocumentationURL: payload["documentation_url"].GetStringValue(),
		Content:          payload["content"].GetStringValue(),
		Type:             commonModels.DocType(payload["type"].GetStringValue()),
		SplitPart:        int(payload["split_part"].GetIntegerValue()),
		Chunk:            int(payload["chunk"].GetIntegerValue()),
		Score:            score,
	}
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	// dot product, the embeddings are normalised
	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Dot,
		}),
	})
}
