package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/akolanti/SDKAssistant/internal/adapter"
	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/api"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/memory"
	"github.com/akolanti/SDKAssistant/internal/session"
)

const agentFailureMessage = "An error occurred while obtaining the agent response."

var (
	chatInstance *chatHandler
	chatOnce     sync.Once
)

type chatHandler struct {
	newAgent session.AgentFactory
	counter  memory.TokenCounter
}

// InitChatHandler wires the stateless /chat endpoint. Every request gets a fresh agent.
func InitChatHandler(newAgent session.AgentFactory, counter memory.TokenCounter) {
	chatOnce.Do(func() {
		chatInstance = &chatHandler{newAgent: newAgent, counter: counter}
	})
}

// ChatHandler godoc
// @Summary      Ask the assistant
// @Description  Runs one agent turn over the given history and returns the answer. Nothing is kept on the server.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest    true  "User input, optional history, attachments and model settings"
// @Success      200      {object}  api.ChatResponse
// @Failure      400      {object}  api.ErrorResponse  "Invalid settings, history or body"
// @Failure      500      {object}  api.ErrorResponse  "The language model failed"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	log := handlerLogger().WithTrace(r.Context())

	requestData := api.NewChatRequest()
	if err := decodeJSON(r, &requestData, false); err != nil {
		log.Warn("Bad Chat Request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateRequest(requestData); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	res, a, files, err := chatInstance.run(r.Context(), requestData)
	if err != nil {
		var validationErr *chatModel.ValidationError
		if errors.As(err, &validationErr) {
			log.Warn("Invalid chat input", "error", err)
			WriteErrorResponse(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		log.Error("Chat turn failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, agentFailureMessage)
		return
	}

	response := api.ChatResponse{
		Input:   res.Input,
		Output:  res.Output,
		Warning: adapter.ToWarning(res.Truncated, files),
	}
	if requestData.ReturnHistory {
		response.History = adapter.ToHistory(memory.PatchLeadingSummary(a.Memory().Load()))
	}
	writeJsonResponse(w, http.StatusOK, response)
}

// run validates everything before the language model is called.
func (h *chatHandler) run(ctx context.Context, req api.ChatRequest) (agent.Result, *agent.Agent, []chatModel.InputFile, error) {
	cfg := adapter.ToModelConfig(req.ModelSettings)
	if err := cfg.Validate(); err != nil {
		return agent.Result{}, nil, nil, err
	}
	turns, err := memory.ParseHistory(adapter.ToMessages(req.History), cfg.Model, h.counter)
	if err != nil {
		return agent.Result{}, nil, nil, err
	}
	files := adapter.ToInputFiles(req.Files)

	a, err := h.newAgent(cfg)
	if err != nil {
		return agent.Result{}, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, config.ChatTurnTimeout)
	defer cancel()
	a.Memory().Seed(ctx, turns)

	res, err := a.Invoke(ctx, agent.Input{Text: req.UserInput, Files: files})
	if err != nil {
		return agent.Result{}, nil, nil, err
	}
	return res, a, files, nil
}
