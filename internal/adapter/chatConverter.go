package adapter

import (
	"strings"

	"github.com/akolanti/SDKAssistant/internal/agent"
	"github.com/akolanti/SDKAssistant/internal/api"
	"github.com/akolanti/SDKAssistant/internal/attachments"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/tools"
)

const TruncationWarning = "The input was too long and therefore was cut off."

func ToModelConfig(settings api.ModelSettings) chatModel.ModelConfig {
	return chatModel.ModelConfig{
		Model:            settings.Model,
		Temperature:      settings.Temperature,
		FrequencyPenalty: settings.FrequencyPenalty,
		PresencePenalty:  settings.PresencePenalty,
		TopP:             settings.TopP,
	}
}

func ToModelSettings(cfg chatModel.ModelConfig) api.ModelSettings {
	return api.ModelSettings{
		Model:            cfg.Model,
		Temperature:      cfg.Temperature,
		FrequencyPenalty: cfg.FrequencyPenalty,
		PresencePenalty:  cfg.PresencePenalty,
		TopP:             cfg.TopP,
	}
}

// ToMessages keeps the roles as sent, validation happens when the history is parsed.
func ToMessages(history []api.HistoryMessage) []chatModel.Message {
	out := make([]chatModel.Message, 0, len(history))
	for _, m := range history {
		out = append(out, chatModel.Message{Role: chatModel.Role(m.Type), Content: m.Content})
	}
	return out
}

func ToHistory(messages []chatModel.Message) []api.HistoryMessage {
	out := make([]api.HistoryMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, api.HistoryMessage{Type: string(m.Role), Content: m.Content})
	}
	return out
}

func ToInputFiles(files []api.EncodedFile) []chatModel.InputFile {
	encoded := make([]attachments.EncodedFile, 0, len(files))
	for _, f := range files {
		encoded = append(encoded, attachments.EncodedFile{FileName: f.FileName, Content: f.Content})
	}
	return attachments.DecodeAll(encoded)
}

// ToWarning joins the truncation notice and the unreadable attachments, empty when there is
// nothing to report.
func ToWarning(truncated bool, files []chatModel.InputFile) string {
	var parts []string
	if truncated {
		parts = append(parts, TruncationWarning)
	}
	for _, e := range attachments.Errors(files) {
		parts = append(parts, "Attachment "+e)
	}
	return strings.Join(parts, " ")
}

func ToActions(actions []chatModel.Action) []api.ActionResponse {
	out := make([]api.ActionResponse, 0, len(actions))
	for _, a := range actions {
		out = append(out, ToAction(a))
	}
	return out
}

func ToAction(action chatModel.Action) api.ActionResponse {
	return api.ActionResponse{
		Tool:   action.Tool,
		Query:  action.Query,
		Output: action.Output,
		Hint:   tools.ToolName(action.Tool).Hint(),
	}
}

func ToTurnDone(result agent.Result, files []chatModel.InputFile) api.TurnDoneEvent {
	return api.TurnDoneEvent{
		Input:   result.Input,
		Output:  result.Output,
		Actions: ToActions(result.Actions),
		Warning: ToWarning(result.Truncated, files),
	}
}

func ToTranscript(id string, cfg chatModel.ModelConfig, entries []chatModel.TranscriptEntry) api.TranscriptResponse {
	messages := make([]api.TranscriptMessage, 0, len(entries))
	for _, e := range entries {
		m := api.TranscriptMessage{Type: string(e.Role), Content: e.Content, CreatedAt: e.CreatedAt}
		if len(e.Actions) > 0 {
			m.Actions = ToActions(e.Actions)
		}
		messages = append(messages, m)
	}
	return api.TranscriptResponse{SessionId: id, Settings: ToModelSettings(cfg), Messages: messages}
}
