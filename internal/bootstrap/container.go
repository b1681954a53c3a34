package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/data/store"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/memory"
	"github.com/akolanti/SDKAssistant/internal/rag"
	"github.com/akolanti/SDKAssistant/internal/rag/embedding"
	"github.com/akolanti/SDKAssistant/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/SDKAssistant/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/SDKAssistant/internal/rag/llm"
	"github.com/akolanti/SDKAssistant/internal/rag/llm/gemini"
	"github.com/akolanti/SDKAssistant/internal/rag/llm/openaiLLM"
	"github.com/akolanti/SDKAssistant/internal/rag/tokenizer"
	"github.com/akolanti/SDKAssistant/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/SDKAssistant/internal/session"
	"github.com/akolanti/SDKAssistant/internal/tools"
	"github.com/akolanti/SDKAssistant/internal/tools/codeInterpreter"
	"github.com/akolanti/SDKAssistant/internal/tools/webSearch"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

// ErrServiceOffline is returned when a required external client could not be created.
var ErrServiceOffline = errors.New("external service unavailable")

/*
Container builds the shared clients once and hands them to whichever front end needs them.
Every accessor is lazy, so `assistant split` never dials qdrant and `assistant mcp` never
needs a chat model. Accessors are not safe for concurrent use; wire everything before serving.
*/
type Container struct {
	ctx      context.Context
	Settings config.Settings
	logger   *logger_i.Logger

	tok          *tokenizer.Tokenizer
	chat         *openaiLLM.Client
	summarizer   llm.Completer
	embedder     embedding.Embedder
	vector       *qdrantDB.ClientHolder
	ragService   rag.Service
	registry     *tools.Registry
	jobs         jobModel.JobStore
	conversation jobModel.ConversationStore
	sessions     *session.Manager
}

// New does not dial anything. Clients created later are closed when ctx is cancelled.
func New(ctx context.Context, settings config.Settings) *Container {
	return &Container{
		ctx:      ctx,
		Settings: settings,
		logger:   logger_i.NewLogger("bootstrap"),
	}
}

func (c *Container) Tokenizer() (*tokenizer.Tokenizer, error) {
	if c.tok == nil {
		tok, err := tokenizer.Get()
		if err != nil {
			return nil, fmt.Errorf("loading tokenizer: %w", err)
		}
		c.tok = tok
	}
	return c.tok, nil
}

// ChatModel is the tool calling model driving the agent.
func (c *Container) ChatModel() (*openaiLLM.Client, error) {
	if c.chat == nil {
		c.chat = openaiLLM.GetOpenAIClient(c.Settings.OpenAIAPIKey)
		if c.chat == nil {
			return nil, fmt.Errorf("openai chat model: %w", ErrServiceOffline)
		}
	}
	return c.chat, nil
}

// Summarizer serves memory summaries, web page summaries and evaluation grading.
func (c *Container) Summarizer() (llm.Completer, error) {
	if c.summarizer != nil {
		return c.summarizer, nil
	}
	switch c.Settings.SummaryProvider {
	case config.ProviderGoogle:
		c.summarizer = gemini.GetGeminiClient(c.ctx, config.GeminiModelName, c.Settings.GoogleAPIKey)
	default:
		if chat, err := c.ChatModel(); err == nil {
			c.summarizer = chat
		}
	}
	if c.summarizer == nil {
		return nil, fmt.Errorf("%s summarizer: %w", c.Settings.SummaryProvider, ErrServiceOffline)
	}
	return c.summarizer, nil
}

func (c *Container) Embedder() (embedding.Embedder, error) {
	if c.embedder != nil {
		return c.embedder, nil
	}
	switch c.Settings.EmbeddingProvider {
	case config.ProviderGoogle:
		c.embedder = googleEmbedding.GetGoogleEmbeddingClient(c.ctx, config.GoogleEmbeddingModel, c.Settings.GoogleAPIKey)
	default:
		c.embedder = openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, c.Settings.OpenAIAPIKey)
	}
	if c.embedder == nil {
		return nil, fmt.Errorf("%s embeddings: %w", c.Settings.EmbeddingProvider, ErrServiceOffline)
	}
	return c.embedder, nil
}

func (c *Container) VectorDB() (*qdrantDB.ClientHolder, error) {
	if c.vector == nil {
		c.vector = qdrantDB.GetQuadrantClient(c.ctx, c.Settings)
		if c.vector == nil {
			return nil, fmt.Errorf("qdrant: %w", ErrServiceOffline)
		}
	}
	return c.vector, nil
}

func (c *Container) RagService() (rag.Service, error) {
	if c.ragService != nil {
		return c.ragService, nil
	}
	vector, err := c.VectorDB()
	if err != nil {
		return nil, err
	}
	embedder, err := c.Embedder()
	if err != nil {
		return nil, err
	}
	tok, err := c.Tokenizer()
	if err != nil {
		return nil, err
	}
	c.ragService = rag.NewService(vector, embedder, tok)
	return c.ragService, nil
}

// Tools always holds documentation search. Web search and the code interpreter are added
// when their keys are configured.
func (c *Container) Tools() (*tools.Registry, error) {
	if c.registry != nil {
		return c.registry, nil
	}
	ragService, err := c.RagService()
	if err != nil {
		return nil, err
	}
	available := []tools.Tool{tools.NewDocumentationTool(ragService)}

	if web, err := c.webSearchTool(); err != nil {
		c.logger.Warn("Web search disabled", "error", err)
	} else {
		available = append(available, web)
	}

	if c.Settings.BearlyAPIKey == "" {
		c.logger.Warn("Code interpreter disabled, BEARLY_API_KEY is not set")
	} else {
		available = append(available, codeInterpreter.New(c.Settings.BearlyAPIKey))
	}

	c.registry = tools.NewRegistry(available...)
	return c.registry, nil
}

func (c *Container) webSearchTool() (*webSearch.Tool, error) {
	searcher, err := webSearch.NewGoogleSearcher(c.ctx, c.Settings.GoogleSearchKey, c.Settings.GoogleSearchCx)
	if err != nil {
		return nil, err
	}
	summarizer, err := c.Summarizer()
	if err != nil {
		return nil, err
	}

	var opts []webSearch.Option
	if c.Settings.WebSearchCacheOn {
		vector, err := c.VectorDB()
		if err != nil {
			return nil, err
		}
		embedder, err := c.Embedder()
		if err != nil {
			return nil, err
		}
		opts = append(opts, webSearch.WithCache(vector, embedder))
	}
	return webSearch.New(searcher, summarizer, opts...), nil
}

// NewAgent builds an agent with its own fresh memory. Agents are never shared between
// conversations.
func (c *Container) NewAgent(cfg chatModel.ModelConfig) (*agent.Agent, error) {
	chat, err := c.ChatModel()
	if err != nil {
		return nil, err
	}
	registry, err := c.Tools()
	if err != nil {
		return nil, err
	}
	summarizer, err := c.Summarizer()
	if err != nil {
		return nil, err
	}
	tok, err := c.Tokenizer()
	if err != nil {
		return nil, err
	}
	return agent.New(cfg, chat, registry, memory.New(cfg.Model, tok, summarizer), tok)
}

// CheckAgent dials every client an agent needs, so servers fail at startup rather than on
// the first message.
func (c *Container) CheckAgent() error {
	_, err := c.NewAgent(chatModel.DefaultModelConfig())
	return err
}

func (c *Container) JobStore() jobModel.JobStore {
	if c.jobs == nil {
		if redisJobs := store.GetRedisJobStore(c.ctx, c.Settings); redisJobs != nil {
			c.jobs = redisJobs
		} else {
			c.fallbackWarning("job store")
			c.jobs = store.InitInMemoryJobStore()
		}
	}
	return c.jobs
}

func (c *Container) ConversationStore() jobModel.ConversationStore {
	if c.conversation == nil {
		if redisConversations := store.GetRedisConversationStore(c.ctx, c.Settings); redisConversations != nil {
			c.conversation = redisConversations
		} else {
			c.fallbackWarning("conversation store")
			c.conversation = store.InitConversationStore()
		}
	}
	return c.conversation
}

func (c *Container) fallbackWarning(name string) {
	c.logger.Warn("Redis is offline, using in-memory store", "store", name)
}

// Sessions is the web chat session manager, backed by the conversation store.
func (c *Container) Sessions() *session.Manager {
	if c.sessions == nil {
		c.sessions = session.NewManager(c.NewAgent, c.ConversationStore())
	}
	return c.sessions
}
