package rag

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/internal/rag/embedding"
	"github.com/akolanti/SDKAssistant/internal/rag/ingest"
	"github.com/akolanti/SDKAssistant/internal/rag/splitter"
	"github.com/akolanti/SDKAssistant/internal/rag/tokenizer"
	"github.com/akolanti/SDKAssistant/internal/rag/vectorDB"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

/*
Service is the public contract of the retrieval pipeline. The private struct holds the
vector index and embedding clients so nothing outside this package reaches them directly,
and tests swap both for mocks through NewService.
*/

// Service is used by the documentation tool and the reindex worker.
type Service interface {
	// SearchDocumentation returns the best unique documentation sections for query as tool text.
	SearchDocumentation(ctx context.Context, query string) (string, error)
	// IndexSplits chunks splits and rebuilds the documentation collection from them.
	IndexSplits(ctx context.Context, splits []commonModels.Split) (int, error)
	// RebuildIndex runs a reindex job: load documents, split, chunk, rebuild.
	RebuildIndex(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	vectorDB vectorDB.DataProcessor
	embedder embedding.Embedder
	indexer  *ingest.Indexer
	splitter splitter.Splitter
	chunker  ingest.Chunker
	logger   *logger_i.Logger
}

func NewService(vector vectorDB.DataProcessor, em embedding.Embedder, tok *tokenizer.Tokenizer) Service {
	return &service{
		vectorDB: vector,
		embedder: em,
		indexer:  ingest.NewIndexer(vector, em),
		splitter: splitter.New(),
		chunker:  ingest.NewChunker(tok),
		logger:   logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) SearchDocumentation(ctx context.Context, query string) (string, error) {
	log := s.logger.WithTrace(ctx)

	queryVector, err := s.executeEmbeddingStep(ctx, query)
	if err != nil {
		log.Error("EMBEDDING_FAILURE", "error", err)
		return "", fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.executeVectorSearchStep(ctx, queryVector)
	if err != nil {
		log.Error("VECTOR_DB_FAILURE", "error", err)
		return "", fmt.Errorf("searching documentation: %w", err)
	}
	if len(results) == 0 {
		return NoResultsFound, nil
	}

	unique := GetUniqueResults(results, config.NUniqueDocumentationResults)
	log.Debug("Documentation search", "hits", len(results), "unique", len(unique))
	return FormatResults(unique), nil
}

func (s *service) IndexSplits(ctx context.Context, splits []commonModels.Split) (int, error) {
	chunks := s.executeChunkingStep(splits)
	if len(chunks) == 0 {
		return 0, errors.New("no chunks to index")
	}
	if err := s.indexer.Rebuild(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

func (s *service) RebuildIndex(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := s.logger.WithTrace(ctx).With("JobId", job.Id)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("reindex", time.Since(start)) }()

	job = logOutput(job, jobModel.LoadingDocuments, log)
	docs, err := ingest.LoadDocuments(job.JobPayload.DocumentsPath)
	if err != nil {
		return s.jobError(job, err, "DOCUMENT_LOADING_FAILURE", false)
	}
	defer func() {
		if err := os.Remove(job.JobPayload.DocumentsPath); err != nil {
			log.Error("Error removing file", "error", err)
		}
	}()
	job.JobPayload.DocumentCount = len(docs)

	job = logOutput(job, jobModel.Splitting, log)
	splits := s.splitter.SplitAll(docs)
	job.JobPayload.SplitCount = len(splits)

	job = logOutput(job, jobModel.Indexing, log)
	count, err := s.IndexSplits(ctx, splits)
	if err != nil {
		return s.jobError(job, err, "INDEXING_FAILURE", true)
	}
	job.JobPayload.ChunkCount = count

	job.Status = jobModel.JobStatusComplete
	return logOutput(job, jobModel.Complete, log)
}
