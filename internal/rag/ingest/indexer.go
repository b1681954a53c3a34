package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/internal/rag/embedding"
	"github.com/akolanti/SDKAssistant/internal/rag/vectorDB"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

type Indexer struct {
	vectorDB          vectorDB.DataProcessor
	embedder          embedding.Embedder
	collection        string
	batchSize         int
	concurrency       int
	hugeDataSetChunks int
	logger            *logger_i.Logger
}

func NewIndexer(vectorDatabase vectorDB.DataProcessor, embedder embedding.Embedder) *Indexer {
	return &Indexer{
		vectorDB:          vectorDatabase,
		embedder:          embedder,
		collection:        config.DocumentationCollection,
		batchSize:         config.IndexBatchSize,
		concurrency:       config.IndexEmbeddingConcurrency,
		hugeDataSetChunks: config.AsyncEmbeddingMinChunks,
		logger:            logger_i.NewLogger("Indexer"),
	}
}

// Rebuild drops the documentation collection and fills a fresh one with chunks.
func (i *Indexer) Rebuild(ctx context.Context, chunks []commonModels.DocChunk) error {
	log := i.logger.WithTrace(ctx)
	log.Info("Rebuilding collection", "collection", i.collection, "chunks", len(chunks))

	if err := i.vectorDB.RecreateCollection(ctx, i.collection); err != nil {
		return fmt.Errorf("recreating collection %s: %w", i.collection, err)
	}
	return i.BatchIngest(ctx, chunks)
}

// BatchIngest embeds and upserts chunks in batches of batchSize, at most concurrency batches
// at a time. The first failing batch cancels the rest.
func (i *Indexer) BatchIngest(ctx context.Context, chunks []commonModels.DocChunk) error {
	log := i.logger.WithTrace(ctx)

	isHugeDataSet := len(chunks) > i.hugeDataSetChunks
	if isHugeDataSet {
		log.Debug("Is a huge dataset")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(i.concurrency, 1))
	for start := 0; start < len(chunks); start += i.batchSize {
		end := min(start+i.batchSize, len(chunks))
		currentBatch := chunks[start:end]
		group.Go(func() error {
			return i.ingestBatch(groupCtx, start, currentBatch, isHugeDataSet)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	log.Info("Indexed chunks", "count", len(chunks))
	return nil
}

func (i *Indexer) ingestBatch(ctx context.Context, start int, batch []commonModels.DocChunk, isHugeDataSet bool) error {
	texts := make([]string, len(batch))
	for j, c := range batch {
		texts[j] = c.EmbeddingText
	}

	i.logger.WithTrace(ctx).Debug("Starting embedding call", "batch start", start, "batch length", len(batch))
	vectors, err := i.embed(ctx, texts, isHugeDataSet)
	if err != nil {
		return fmt.Errorf("embedding batch at %d failed: %w", start, err)
	}

	if err = i.vectorDB.UpsertBatch(ctx, i.collection, batch, vectors); err != nil {
		return fmt.Errorf("upserting batch at %d failed: %w", start, err)
	}
	return nil
}

func (i *Indexer) embed(ctx context.Context, texts []string, isHugeDataSet bool) ([][]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	vectors, err := i.embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("got %d vectors for %d texts", len(vectors), len(texts))
	}
	return vectors, nil
}
