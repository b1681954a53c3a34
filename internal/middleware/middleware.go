package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/SDKAssistant/internal/handlers"
	"github.com/akolanti/SDKAssistant/internal/metrics"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var GetHandler = Wrap(handlers.GetHandler)

var ChatHandler = Wrap(handlers.ChatHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)
var PostIngestHandler = Wrap(handlers.PostIngestHandler)

var CreateSessionHandler = Wrap(handlers.CreateSessionHandler)
var PostSessionMessageHandler = Wrap(handlers.PostSessionMessageHandler)
var GetSessionMessagesHandler = Wrap(handlers.GetSessionMessagesHandler)
var DeleteSessionHandler = Wrap(handlers.DeleteSessionHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if !handleBadRequest(re) {
			recordRequest(r, rec.Status)
			return
		}
		next(rec, re.req)

		recordRequest(re.req, rec.Status)
	}
}

// recordRequest labels by route pattern so ids do not explode the series count.
func recordRequest(r *http.Request, status int) {
	path := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		path = rctx.RoutePattern()
	}
	metrics.HttpRequestsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Debug("New request received")
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re
	}
	return rateLimiter(re)
}
