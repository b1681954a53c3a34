package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                     = false
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5
	CacheSimilarityCutoff       = 0.97
	WebSearchCacheTTL           = 24 * time.Hour

	ServiceName = "Generative AI Python SDK Assistant API"

	//embeddings - text-embedding-3-large is 3072, gemini-embedding-001 is truncated to the same size
	EmbeddingOutputDimensionality int32 = 3072
	OpenAIEmbeddingModel                = "text-embedding-3-large"
	GoogleEmbeddingModel                = "gemini-embedding-001"
	DocumentationCollection             = "documentation"
	WebSearchCacheCollection            = "web-search-cache"

	//splitting + chunking
	SplitDocumentsLongerThanNChars = 8000
	MinSplitLengthChars            = 5000
	ChunkSizeTokens                = 300
	ChunkOverlapTokens             = 75
	IndexBatchSize                 = 100
	IndexEmbeddingConcurrency      = 4
	AsyncEmbeddingMinChunks        = 20000 //embedders may switch to async batch jobs above this many chunks

	//retrieval
	NDocumentationResults       = 15
	NUniqueDocumentationResults = 3

	//web search
	NWebSearchResults                        = 3
	WebSearchScrapingTimeout                 = 5 * time.Second
	WebSearchScrapingMaxResultLength         = 10000
	WebSearchSummarizeMaxTokens              = 1000
	WebSearchModel                           = "gpt-3.5-turbo"
	WebSearchTemperature             float64 = 0

	//code interpreter
	BearlyInterpreterURL     = "https://exec.bearly.ai/v1/interpreter"
	CodeInterpreterTimeout   = 60 * time.Second
	AttachmentExcerptTokens  = 2000
	AgentMaxIterations       = 15
	MemorySummaryMaxTokens   = 1000
	EvaluationJudgeModel     = "gpt-4-turbo-preview"
	TerminalIntroductionText = "Generative AI Python SDK Assistant. Type quit to exit."

	//documentation source
	DocumentationRepoOwner   = "IBM"
	DocumentationRepoName    = "ibm-generative-ai"
	DocumentationSourceDir   = "documentation/source"
	DocumentationExamplesDir = "examples"
	DocumentationBaseURL     = "https://ibm.github.io/ibm-generative-ai/main/"
	ScraperRequestTimeout    = 60 * time.Second
	ScraperRequestsPerSecond = 5

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 4
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	ReindexJobTimeout               = 30 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 5 * time.Minute //agent turns stream for a while
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second
	ChatTurnTimeout        = 4 * time.Minute
	MaxRequestBodyBytes    = 32 << 20

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//sessions
	SessionTTL             = 1 * time.Hour
	SessionCleanupInterval = 10 * time.Minute

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = "localhost"
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false //set for https
	QdrantPoolSize          = 1     //2-5 is preferred for prod according to documentation

	//llm
	LLMConnectionTimeout = 60 * time.Second
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore          = 0
	RedisConversationStore = 1

	//redis timeouts
	RedisJobStoreTTL          = 24 * time.Hour
	RedisConversationStoreTTL = 24 * time.Hour
)
