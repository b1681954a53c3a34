package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/akolanti/SDKAssistant/internal/adapter"
	"github.com/akolanti/SDKAssistant/internal/adapter/utils"
	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/api"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/session"
)

const eventError = "error"

var (
	sessionManager *session.Manager
	sessionOnce    sync.Once
)

func InitSessionHandler(manager *session.Manager) {
	sessionOnce.Do(func() {
		sessionManager = manager
	})
}

// CreateSessionHandler godoc
// @Summary      Start a chat session
// @Description  Creates a server side conversation with its own memory. Omitted settings take their defaults.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body      api.ModelSettings  false  "Model settings"
// @Success      201      {object}  api.CreateSessionResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /sessions [post]
func CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	settings := api.DefaultModelSettings()
	if err := decodeJSON(r, &settings, true); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := sessionManager.Create(r.Context(), adapter.ToModelConfig(settings))
	if err != nil {
		writeSessionError(w, r.Context(), err)
		return
	}
	writeJsonResponse(w, http.StatusCreated, api.CreateSessionResponse{SessionId: s.ID})
}

// PostSessionMessageHandler godoc
// @Summary      Send a message to a session
// @Description  Runs one agent turn and streams it as server sent events: text_delta, tool_started, tool_finished, then done or error.
// @Tags         Sessions
// @Accept       json
// @Produce      text/event-stream
// @Param        id       path      string                     true  "Session ID"
// @Param        request  body      api.SessionMessageRequest  true  "User input and attachments"
// @Success      200      {object}  api.TurnDoneEvent          "Payload of the final done event"
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse          "Session not found"
// @Failure      409      {object}  api.ErrorResponse          "A message is already being processed"
// @Router       /sessions/{id}/messages [post]
func PostSessionMessageHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	log := handlerLogger().WithTrace(r.Context()).With("sessionId", id)

	var requestData api.SessionMessageRequest
	if err := decodeJSON(r, &requestData, false); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateRequest(requestData); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	files := adapter.ToInputFiles(requestData.Files)

	ctx, cancel := context.WithTimeout(r.Context(), config.ChatTurnTimeout)
	defer cancel()

	stream := newEventStream(w)
	_, err := sessionManager.RunTurn(ctx, id, agent.Input{Text: requestData.UserInput, Files: files}, func(event agent.Event) error {
		return stream.send(eventName(event), eventPayload(event, files))
	})
	if err == nil {
		return
	}
	if !stream.started {
		writeSessionError(w, r.Context(), err)
		return
	}
	if r.Context().Err() != nil {
		log.Info("Client disconnected mid turn")
		return
	}
	log.Error("Streamed turn failed", "error", err)
	_ = stream.send(eventError, adapter.ToErrorResponse(agentFailureMessage))
}

// GetSessionMessagesHandler godoc
// @Summary      Session transcript
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  api.TranscriptResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /sessions/{id}/messages [get]
func GetSessionMessagesHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	s, err := sessionManager.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, r.Context(), err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToTranscript(s.ID, s.Config(), s.Transcript()))
}

// DeleteSessionHandler godoc
// @Summary      Reset a session
// @Description  Clears the memory and transcript, the settings are kept.
// @Tags         Sessions
// @Param        id   path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /sessions/{id} [delete]
func DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	if err := sessionManager.Reset(r.Context(), utils.GetChiURLParam(r, "id")); err != nil {
		writeSessionError(w, r.Context(), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeSessionError(w http.ResponseWriter, ctx context.Context, err error) {
	var validationErr *chatModel.ValidationError
	switch {
	case errors.As(err, &validationErr):
		WriteErrorResponse(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, session.ErrSessionNotFound):
		WriteErrorResponse(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, session.ErrSessionBusy):
		WriteErrorResponse(w, http.StatusConflict, "A message is already being processed in this session")
	default:
		handlerLogger().WithTrace(ctx).Error("Session request failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, agentFailureMessage)
	}
}

func eventName(event agent.Event) string {
	return string(event.Type)
}

func eventPayload(event agent.Event, files []chatModel.InputFile) any {
	switch event.Type {
	case agent.EventTextDelta:
		return api.TextDeltaEvent{Text: event.Text}
	case agent.EventToolStarted, agent.EventToolFinished:
		return adapter.ToAction(*event.Action)
	default:
		return adapter.ToTurnDone(*event.Result, files)
	}
}

// eventStream writes server sent events. Headers go out with the first event so errors
// raised before it can still use a plain status code.
type eventStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

func newEventStream(w http.ResponseWriter) *eventStream {
	flusher, _ := w.(http.Flusher)
	return &eventStream{w: w, flusher: flusher}
}

func (s *eventStream) send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if !s.started {
		s.w.Header().Set("Content-Type", "text/event-stream")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.Header().Set("Connection", "keep-alive")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}
	if _, err = fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
