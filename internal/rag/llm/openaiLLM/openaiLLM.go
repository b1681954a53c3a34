package openaiLLM

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/SDKAssistant/internal/customHttpClient"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/internal/rag/llm"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	once     sync.Once
	instance *Client
)

type Client struct {
	api    openai.Client
	logger *logger_i.Logger
}

// GetOpenAIClient returns the process wide chat client, nil without an API key.
func GetOpenAIClient(apikey string) *Client {
	once.Do(func() {
		if apikey == "" {
			logger_i.NewLogger("llm_openai").Error("OpenAI API key is missing")
			return
		}
		instance = NewClient(
			option.WithAPIKey(apikey),
			option.WithHTTPClient(customHttpClient.GetClient()),
		)
	})
	return instance
}

func NewClient(opts ...option.RequestOption) *Client {
	return &Client{
		api:    openai.NewClient(opts...),
		logger: logger_i.NewLogger("llm_openai"),
	}
}

// StreamChat runs one completion with at most one tool call per assistant message.
func (c *Client) StreamChat(ctx context.Context, settings llm.Settings, messages []llm.Message, tools []llm.ToolSpec, onDelta func(string)) (llm.Message, error) {
	log := c.logger.WithTrace(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_stream", time.Since(start)) }()

	params := toParams(settings, messages)
	if len(tools) > 0 {
		params.Tools = toToolParams(tools)
		params.ParallelToolCalls = openai.Bool(false)
	}

	stream := c.api.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	acc := openai.ChatCompletionAccumulator{}
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" && onDelta != nil {
			onDelta(chunk.Choices[0].Delta.Content)
		}
	}
	if err := stream.Err(); err != nil {
		log.Error("Streaming chat completion failed", "model", settings.Model, "error", err)
		return llm.Message{}, err
	}
	if len(acc.Choices) == 0 {
		return llm.Message{}, llm.ErrEmptyResponse
	}

	answer := acc.Choices[0].Message
	result := llm.Message{Role: llm.RoleAssistant, Content: answer.Content}
	for _, call := range answer.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, llm.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	log.Debug("Chat completion finished", "tool calls", len(result.ToolCalls), "finish", acc.Choices[0].FinishReason)
	return result, nil
}

func (c *Client) Complete(ctx context.Context, prompt string, settings llm.Settings) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_complete", time.Since(start)) }()

	res, err := c.api.Chat.Completions.New(ctx, toParams(settings, []llm.Message{llm.UserMessage(prompt)}))
	if err != nil {
		c.logger.WithTrace(ctx).Error("Chat completion failed", "model", settings.Model, "error", err)
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	return res.Choices[0].Message.Content, nil
}

func toParams(settings llm.Settings, messages []llm.Message) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:            openai.ChatModel(settings.Model),
		Messages:         toMessageParams(messages),
		Temperature:      openai.Float(settings.Temperature),
		FrequencyPenalty: openai.Float(settings.FrequencyPenalty),
		PresencePenalty:  openai.Float(settings.PresencePenalty),
		TopP:             openai.Float(settings.TopP),
	}
	if settings.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(settings.MaxTokens))
	}
	return params
}

func toMessageParams(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case llm.RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case llm.RoleTool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		case llm.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))
				continue
			}
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if m.Content != "" {
				assistant.Content.OfString = openai.String(m.Content)
			}
			for _, call := range m.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
					ID: call.ID,
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      call.Name,
						Arguments: call.Arguments,
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		}
	}
	return out
}

func toToolParams(tools []llm.ToolSpec) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  openai.FunctionParameters(t.Parameters),
			},
		})
	}
	return out
}
