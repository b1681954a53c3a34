package agent

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/memory"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/internal/rag/llm"
	"github.com/akolanti/SDKAssistant/internal/rag/tokenizer"
	"github.com/akolanti/SDKAssistant/internal/tools"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

// Agent runs the turns of one conversation. It owns its memory and must not be shared
// between conversations. Turns on the same agent are serialized.
type Agent struct {
	turnMu        sync.Mutex
	chat          llm.ChatModel
	registry      *tools.Registry
	memory        *memory.Memory
	tok           *tokenizer.Tokenizer
	config        chatModel.ModelConfig
	maxIterations int
	now           func() time.Time
	logger        *logger_i.Logger
}

// New fails with a ValidationError on an out of range configuration.
func New(cfg chatModel.ModelConfig, chat llm.ChatModel, registry *tools.Registry, mem *memory.Memory, tok *tokenizer.Tokenizer) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Agent{
		chat:          chat,
		registry:      registry,
		memory:        mem,
		tok:           tok,
		config:        cfg,
		maxIterations: config.AgentMaxIterations,
		now:           time.Now,
		logger:        logger_i.NewLogger("Agent").With("model", cfg.Model),
	}, nil
}

func (a *Agent) Memory() *memory.Memory { return a.memory }

func (a *Agent) Config() chatModel.ModelConfig { return a.config }

func (a *Agent) settings() llm.Settings {
	return llm.Settings{
		Model:            a.config.Model,
		Temperature:      a.config.Temperature,
		FrequencyPenalty: a.config.FrequencyPenalty,
		PresencePenalty:  a.config.PresencePenalty,
		TopP:             a.config.TopP,
	}
}

// Invoke runs a turn to completion.
func (a *Agent) Invoke(ctx context.Context, in Input) (Result, error) {
	for event, err := range a.Stream(ctx, in) {
		if err != nil {
			return Result{}, err
		}
		if event.Type == EventDone {
			return *event.Result, nil
		}
	}
	return Result{}, ctx.Err()
}

// Stream returns the events of one turn. The sequence runs the turn while it is iterated and
// can be iterated once. The turn is committed to memory right before the done event, so
// stopping early or cancelling ctx leaves memory untouched.
func (a *Agent) Stream(ctx context.Context, in Input) iter.Seq2[Event, error] {
	var consumed atomic.Bool
	return func(yield func(Event, error) bool) {
		if consumed.Swap(true) {
			yield(Event{}, ErrStreamConsumed)
			return
		}

		a.turnMu.Lock()
		defer a.turnMu.Unlock()
		a.runTurn(ctx, in, yield)
	}
}

func (a *Agent) runTurn(parent context.Context, in Input, yield func(Event, error) bool) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	log := a.logger.WithTrace(ctx)

	input, truncated := a.BuildInput(in)
	messages := a.initialMessages(input)
	specs := a.registry.Specs()
	result := Result{Input: input, Truncated: truncated, Actions: []chatModel.Action{}}

	stopped := false
	onDelta := func(delta string) {
		if stopped {
			return
		}
		if !yield(Event{Type: EventTextDelta, Text: delta}, nil) {
			stopped = true
			cancel()
		}
	}

	for iteration := 0; ; iteration++ {
		if iteration == a.maxIterations {
			log.Warn("Iteration limit reached", "iterations", iteration)
			result.Output = StoppedOutput
			break
		}

		reply, err := a.chat.StreamChat(ctx, a.settings(), messages, specs, onDelta)
		if stopped {
			return
		}
		if err != nil {
			if parent.Err() != nil {
				yield(Event{}, parent.Err())
				return
			}
			log.Error("LLM_FAILURE", "iteration", iteration, "error", err)
			yield(Event{}, fmt.Errorf("%w: %w", ErrUpstream, err))
			return
		}

		if len(reply.ToolCalls) == 0 {
			result.Output = reply.Content
			break
		}

		messages = append(messages, reply)
		for _, call := range reply.ToolCalls {
			action, ok := a.runTool(ctx, call, yield)
			if !ok {
				return
			}
			result.Actions = append(result.Actions, action)
			messages = append(messages, llm.ToolResultMessage(call.ID, action.Output))
		}
	}

	if err := parent.Err(); err != nil {
		yield(Event{}, err)
		return
	}
	a.memory.Append(ctx, result.Input, result.Output)
	yield(Event{Type: EventDone, Result: &result}, nil)
}

// runTool reports false when the turn has to end, either because the consumer stopped
// iterating or because ctx was cancelled.
func (a *Agent) runTool(ctx context.Context, call llm.ToolCall, yield func(Event, error) bool) (chatModel.Action, bool) {
	log := a.logger.WithTrace(ctx)
	action := chatModel.Action{Tool: call.Name, Query: call.Arguments}
	name := tools.ToolName(call.Name)

	tool, err := a.registry.Lookup(call.Name)
	if err == nil {
		action.Query, err = tools.DecodeArgument(tool, call.Arguments)
	}

	started := action
	if !yield(Event{Type: EventToolStarted, Action: &started, Hint: name.Hint()}, nil) {
		return action, false
	}

	if err == nil {
		start := time.Now()
		action.Output, err = tool.Invoke(ctx, action.Query)
		metrics.CaptureExecutionMetrics("tool:"+call.Name, time.Since(start))
	}
	if err != nil {
		if ctx.Err() != nil {
			yield(Event{}, ctx.Err())
			return action, false
		}
		log.Warn("Tool call failed", "tool", call.Name, "error", err)
		action.Output = "Error: " + err.Error()
	}

	finished := action
	if !yield(Event{Type: EventToolFinished, Action: &finished, Hint: name.Hint()}, nil) {
		return action, false
	}
	return action, true
}

func (a *Agent) initialMessages(input string) []llm.Message {
	history := a.memory.Load()
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.SystemMessage(systemPrompt(a.now())))
	for _, m := range history {
		if m.Role == chatModel.RoleHuman {
			messages = append(messages, llm.UserMessage(m.Content))
		} else {
			messages = append(messages, llm.AssistantMessage(m.Content))
		}
	}
	return append(messages, llm.UserMessage(input))
}
