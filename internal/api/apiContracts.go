package api

import (
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"500"`
	Message string `json:"message" example:"Internal Server Error"`
	Retry   bool   `json:"can_retry" example:"true"`
}

type ReindexResponse struct {
	DocumentCount int `json:"document_count" example:"142"`
	SplitCount    int `json:"split_count" example:"310"`
	ChunkCount    int `json:"chunk_count" example:"2480"`
}

type Result struct {
	Status  string           `json:"status" example:"RUNNING"`
	Step    string           `json:"step" example:"Indexing"`
	Reindex *ReindexResponse `json:"reindex,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// ErrorResponse is the body of every 4xx and 5xx answer.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Temperature must be between 0 and 1.5"`
}

type HomeResponse struct {
	Name   string `json:"Name" example:"Generative AI Python SDK Assistant API"`
	Status string `json:"Status" example:"ok"`
}

// requests---------------------

type HistoryMessage struct {
	Type    string `json:"type" example:"human" enums:"human,ai"`
	Content string `json:"content" example:"How do I authenticate?"`
}

type EncodedFile struct {
	FileName string `json:"file_name" example:"data.csv"`
	Content  string `json:"content" example:"YSxiCjEsMg=="`
}

type ModelSettings struct {
	Model            string  `json:"model" example:"gpt-3.5-turbo"`
	Temperature      float64 `json:"temperature" example:"0.7"`
	FrequencyPenalty float64 `json:"frequency_penalty" example:"0"`
	PresencePenalty  float64 `json:"presence_penalty" example:"0"`
	TopP             float64 `json:"top_p" example:"1"`
}

type ChatRequest struct {
	UserInput string           `json:"user_input" validate:"required" example:"How do I create a credentials object?"`
	History   []HistoryMessage `json:"history,omitempty"`
	Files     []EncodedFile    `json:"files,omitempty"`
	ModelSettings
	ReturnHistory bool `json:"return_history" example:"false"`
}

// NewChatRequest is a request carrying the defaults for every optional field, decode into it.
func NewChatRequest() ChatRequest {
	return ChatRequest{ModelSettings: DefaultModelSettings()}
}

func DefaultModelSettings() ModelSettings {
	return ModelSettings{
		Model:            config.DefaultModel,
		Temperature:      config.DefaultTemperature,
		FrequencyPenalty: config.DefaultFrequencyPenalty,
		PresencePenalty:  config.DefaultPresencePenalty,
		TopP:             config.DefaultTopP,
	}
}

type ChatResponse struct {
	Input   string           `json:"input"`
	Output  string           `json:"output"`
	History []HistoryMessage `json:"history,omitempty"`
	Warning string           `json:"warning,omitempty"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id" example:"0b6c7f2e-9a43-4c1e-9d2f-8d1b1a4e6c11"`
}

type SessionMessageRequest struct {
	UserInput string        `json:"user_input" validate:"required" example:"Show me an example"`
	Files     []EncodedFile `json:"files,omitempty"`
}

type ActionResponse struct {
	Tool   string `json:"tool" example:"search_documentation"`
	Query  string `json:"query" example:"credentials"`
	Output string `json:"output,omitempty"`
	Hint   string `json:"hint,omitempty" example:"Query to documentation"`
}

type TranscriptMessage struct {
	Type      string           `json:"type" example:"ai"`
	Content   string           `json:"content"`
	Actions   []ActionResponse `json:"actions,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type TranscriptResponse struct {
	SessionId string              `json:"session_id"`
	Settings  ModelSettings       `json:"settings"`
	Messages  []TranscriptMessage `json:"messages"`
}

// stream events---------------------

type TextDeltaEvent struct {
	Text string `json:"text"`
}

type TurnDoneEvent struct {
	Input   string           `json:"input"`
	Output  string           `json:"output"`
	Actions []ActionResponse `json:"actions"`
	Warning string           `json:"warning,omitempty"`
}
