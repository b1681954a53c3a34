package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/SDKAssistant/internal/adapter"
	"github.com/akolanti/SDKAssistant/internal/adapter/utils"
	"github.com/akolanti/SDKAssistant/internal/api"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/rag/ingest"
)

// GetHandler godoc
// @Summary      Health check
// @Tags         Service
// @Produce      json
// @Success      200  {object}  api.HomeResponse
// @Router       / [get]
func GetHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HomeResponse{Name: config.ServiceName, Status: "ok"})
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a reindex job using its ID.
// @Tags         Indexing
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse    "The current status of the job"
// @Failure      404  {object}  api.ErrorResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	handlerLogger().WithTrace(r.Context()).Debug("Get Status Request", "jobId", idString)

	if idString == "" {
		WriteErrorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	result, isFound := GetJobStatus(idString, traceId(r.Context()))
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// PostIngestHandler godoc
// @Summary      Rebuild the documentation index
// @Description  Receives a scraped documents JSON file via multipart/form-data and queues a job that splits, chunks and reindexes it. The previous index is replaced.
// @Tags         Indexing
// @Accept       multipart/form-data
// @Produce      json
// @Param        documents  formData  file  true  "JSON array of scraped documents (source_url, documentation_url, content, type)"
// @Success      202  {object}  api.InitJobResponse  "Accepted, poll status_url"
// @Failure      400  {object}  api.ErrorResponse    "Missing file, file too large or not a documents file"
// @Failure      500  {object}  api.ErrorResponse    "Storage or write error"
// @Router       /ingest [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	log := handlerLogger().WithTrace(r.Context())

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		log.Error("Couldn't get target directory", "error", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, errString)
		return
	}

	if err := r.ParseMultipartForm(config.MaxRequestBodyBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("documents")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "documents file is required")
		return
	}
	defer fileReader.Close()

	if _, err = ingest.ReadDocuments(fileReader); err != nil {
		log.Warn("Rejected documents upload", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "documents must be a JSON array of documents")
		return
	}
	if _, err = fileReader.Seek(0, io.SeekStart); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileMetadata.Filename))
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err = io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Write error")
		return
	}
	if err = destinationFileWriter.Close(); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Write error")
		return
	}

	newJob := newJobData{
		id:            utils.GetNewUUID(),
		traceId:       traceId(r.Context()),
		documentsName: fileMetadata.Filename,
		documentsPath: tempFilePath,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}
