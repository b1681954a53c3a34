package rag

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

const NoResultsFound = "No results found."

var ResultSeparator = "\n\n" + strings.Repeat("=", 40) + "\n\n"

type resultKey struct {
	sourceURL string
	splitPart int
}

// GetUniqueResults keeps the first hit of every (source_url, split_part) in ranking order
// and stops after nResults.
func GetUniqueResults(results []commonModels.ChunkMetadata, nResults int) []commonModels.ChunkMetadata {
	seen := make(map[resultKey]struct{}, nResults)
	unique := make([]commonModels.ChunkMetadata, 0, nResults)
	for _, result := range results {
		if len(unique) >= nResults {
			break
		}
		key := resultKey{sourceURL: result.SourceURL, splitPart: result.SplitPart}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, result)
	}
	return unique
}

func FormatResults(results []commonModels.ChunkMetadata) string {
	outputs := make([]string, 0, len(results))
	for _, r := range results {
		outputs = append(outputs, "Documentation page URL: "+r.DocumentationURL+"\n"+r.Content)
	}
	return strings.Join(outputs, ResultSeparator)
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("RebuildIndex", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err, "JobId", job.Id)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

func (s *service) executeEmbeddingStep(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, query)
}

func (s *service) executeVectorSearchStep(ctx context.Context, emb []float32) ([]commonModels.ChunkMetadata, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Search(ctx, config.DocumentationCollection, emb, config.NDocumentationResults)
}

func (s *service) executeChunkingStep(splits []commonModels.Split) []commonModels.DocChunk {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunking", time.Since(start)) }()

	return s.chunker.PrepareChunks(splits)
}
