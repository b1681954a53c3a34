package adapter

import (
	"fmt"

	"github.com/akolanti/SDKAssistant/internal/api"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:  string(job.Status),
		Step:    string(job.CurrentStep),
		Reindex: ToReindexResponse(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

// ToReindexResponse is nil until the documents have been loaded.
func ToReindexResponse(payload jobModel.JobPayload) *api.ReindexResponse {
	if payload.DocumentCount == 0 && payload.SplitCount == 0 && payload.ChunkCount == 0 {
		return nil
	}

	return &api.ReindexResponse{
		DocumentCount: payload.DocumentCount,
		SplitCount:    payload.SplitCount,
		ChunkCount:    payload.ChunkCount,
	}
}

func ToErrorResponse(message string) api.ErrorResponse {
	return api.ErrorResponse{Detail: message}
}
