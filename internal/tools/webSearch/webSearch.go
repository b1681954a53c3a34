package webSearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/SDKAssistant/internal/adapter/utils"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/internal/rag/embedding"
	"github.com/akolanti/SDKAssistant/internal/rag/llm"
	"github.com/akolanti/SDKAssistant/internal/rag/vectorDB"
	"github.com/akolanti/SDKAssistant/internal/tools"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

const SummaryTemplate = `%s

-----------

Using the above text, answer or extract information about the following query:

> %s

-----------
If the query cannot be answered using the text and no relevant information can be extracted, write a detailed summarization of text instead. Include all factual information, code examples, numbers, stats, etc. if available.`

const NoResultsFound = "No results found."

// Tool searches Google and returns the summaries of the most relevant results.
type Tool struct {
	searcher   Searcher
	fetcher    Fetcher
	summarizer llm.Completer
	settings   llm.Settings
	nResults   int
	maxChars   int

	// optional semantic cache of whole tool outputs
	cache    vectorDB.SemanticCache
	embedder embedding.Embedder

	logger *logger_i.Logger
}

type Option func(*Tool)

// WithCache stores every output under the embedding of its query and serves near duplicates from it.
func WithCache(cache vectorDB.SemanticCache, embedder embedding.Embedder) Option {
	return func(t *Tool) {
		t.cache = cache
		t.embedder = embedder
	}
}

func WithFetcher(fetcher Fetcher) Option {
	return func(t *Tool) { t.fetcher = fetcher }
}

func New(searcher Searcher, summarizer llm.Completer, opts ...Option) *Tool {
	t := &Tool{
		searcher:   searcher,
		fetcher:    NewFetcher(),
		summarizer: summarizer,
		settings: llm.Settings{
			Model:       config.WebSearchModel,
			Temperature: config.WebSearchTemperature,
			TopP:        config.DefaultTopP,
			MaxTokens:   config.WebSearchSummarizeMaxTokens,
		},
		nResults: config.NWebSearchResults,
		maxChars: config.WebSearchScrapingMaxResultLength,
		logger:   logger_i.NewLogger("Web Search"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tool) Name() tools.ToolName { return tools.SearchGoogle }

func (t *Tool) Description() string {
	return "Searches Google and returns the summaries of the most relevant results."
}

func (t *Tool) Argument() tools.Argument { return tools.QueryArgument }

func (t *Tool) Invoke(ctx context.Context, query string) (string, error) {
	return t.Search(ctx, query)
}

// Search summarizes each of the top pages for query. Pages are processed concurrently and the
// output keeps the search ranking.
func (t *Tool) Search(ctx context.Context, query string) (string, error) {
	log := t.logger.WithTrace(ctx)

	queryVector, cached, ok := t.lookupCache(ctx, query)
	if ok {
		log.Debug("Web search cache hit")
		return cached, nil
	}

	urls, err := t.searcher.TopURLs(ctx, query, t.nResults)
	if err != nil {
		log.Error("SEARCH_FAILURE", "error", err)
		return "", err
	}
	if len(urls) == 0 {
		return NoResultsFound, nil
	}

	blocks := make([]string, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			blocks[i] = fmt.Sprintf("URL: %s\nSUMMARY: %s", url, t.summarizePage(gctx, query, url))
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return "", err
	}

	output := strings.Join(blocks, "\n\n")
	t.saveCache(ctx, queryVector, output)
	return output, nil
}

func (t *Tool) summarizePage(ctx context.Context, query string, url string) string {
	text := truncateChars(t.fetcher.FetchText(ctx, url), t.maxChars)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("summarize", time.Since(start)) }()

	summary, err := t.summarizer.Complete(ctx, fmt.Sprintf(SummaryTemplate, text, query), t.settings)
	if err != nil {
		t.logger.WithTrace(ctx).Warn("Summarizing page failed", "url", url, "error", err)
		return "Failed to summarize the webpage: " + err.Error()
	}
	return summary
}

func (t *Tool) lookupCache(ctx context.Context, query string) ([]float32, string, bool) {
	if t.cache == nil || t.embedder == nil {
		return nil, "", false
	}
	log := t.logger.WithTrace(ctx)

	vector, err := t.embedder.GetEmbedding(ctx, query)
	if err != nil {
		log.Warn("Embedding web search query failed", "error", err)
		return nil, "", false
	}
	answer, found, err := t.cache.GetCachedAnswer(ctx, vector)
	if err != nil {
		log.Warn("Web search cache lookup failed", "error", err)
		return vector, "", false
	}
	return vector, answer, found
}

func (t *Tool) saveCache(ctx context.Context, vector []float32, output string) {
	if t.cache == nil || vector == nil {
		return
	}
	if err := t.cache.SaveToCache(ctx, utils.GetNewUUID(), vector, output); err != nil {
		t.logger.WithTrace(ctx).Warn("Saving web search cache failed", "error", err)
	}
}

func truncateChars(text string, max int) string {
	if max <= 0 {
		return text
	}
	count := 0
	for i := range text {
		if count == max {
			return text[:i]
		}
		count++
	}
	return text
}
