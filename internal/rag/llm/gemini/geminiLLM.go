package gemini

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/internal/rag/llm"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"google.golang.org/genai"
)

// llmClient is a Completer for summaries. Gemini has its own model names, so the
// model in the request settings is ignored.
type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Completer {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName}
		logger.Debug("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiClient)
	}
}

func (c *llmClient) Complete(ctx context.Context, prompt string, settings llm.Settings) (string, error) {
	log := logger.WithTrace(ctx)
	if c.client == nil {
		return "", errors.New("gemini client is closed")
	}
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_complete", time.Since(start)) }()

	contentConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(settings.Temperature)),
	}
	if settings.MaxTokens > 0 {
		contentConfig.MaxOutputTokens = int32(settings.MaxTokens)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), contentConfig)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
