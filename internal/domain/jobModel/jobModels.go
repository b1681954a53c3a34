package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	ReindexInit      InternalStatus = "ReindexInit"
	LoadingDocuments InternalStatus = "LoadingDocuments"
	Splitting        InternalStatus = "Splitting"
	Indexing         InternalStatus = "Indexing"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeReindex JobType = "Reindex"
)

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	DocumentsFileName string `json:"documents_file_name,omitempty"`
	DocumentsPath     string `json:"documents_path,omitempty"`

	DocumentCount int `json:"document_count,omitempty"`
	SplitCount    int `json:"split_count,omitempty"`
	ChunkCount    int `json:"chunk_count,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// ConversationState is what a web chat session persists between turns.
type ConversationState struct {
	Config     chatModel.ModelConfig       `json:"config"`
	Summary    string                      `json:"summary,omitempty"`
	HasSummary bool                        `json:"has_summary,omitempty"`
	Turns      []chatModel.Turn            `json:"turns"`
	Transcript []chatModel.TranscriptEntry `json:"transcript"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

type ConversationStore interface {
	SaveConversation(ctx context.Context, id string, state ConversationState) error
	GetConversation(ctx context.Context, id string) (ConversationState, bool)
	DeleteConversation(ctx context.Context, id string)
}
