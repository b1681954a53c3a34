package qdrantDB

import (
	"context"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/qdrant/go-client/qdrant"
)

var semanticCacheDBName = config.WebSearchCacheCollection

func initCacheCollection(ctx context.Context, client *qdrant.Client) {
	loggr := logger.WithTrace(ctx)
	err := createCollection(ctx, client, semanticCacheDBName)
	if err != nil {
		loggr.Error("Semantic cache collection creation failed", "error", err)
	}
}

// GetCachedAnswer returns the closest cached answer younger than the cache TTL
// when its similarity clears the cutoff.
func (db *ClientHolder) GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error) {
	loggr := logger.WithTrace(ctx)

	loggr.Info("Searching for cached answer")
	notBefore := float64(time.Now().Add(-config.WebSearchCacheTTL).Unix())
	searchResult, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: semanticCacheDBName,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(1)),
		WithPayload:    qdrant.NewWithPayload(true),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewRange("timestamp", &qdrant.Range{Gte: qdrant.PtrOf(notBefore)}),
			},
		},
	})
	if err != nil {
		loggr.Error("Cache Query failed", "error", err)
		return "", false, err
	}
	if len(searchResult) == 0 {
		return "", false, nil
	}

	loggr.Debug("Found cached answer", "semantic similarity score", searchResult[0].Score)
	if searchResult[0].Score < config.CacheSimilarityCutoff {
		return "", false, nil
	}

	loggr.Info("---------------cache hit---------------------")
	answer := searchResult[0].Payload["answer"].GetStringValue()
	return answer, true, nil
}

func (db *ClientHolder) SaveToCache(ctx context.Context, id string, vector []float32, answer string) error {
	loggr := logger.WithTrace(ctx)

	loggr.Debug("Saving answer to cache")
	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: semanticCacheDBName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"answer":    answer,
					"timestamp": time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		loggr.Error("Saving answer to cache failed", "error", err)
	}
	return err
}
