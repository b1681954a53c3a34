package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/SDKAssistant/internal/bootstrap"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/jobModel"
	"github.com/akolanti/SDKAssistant/internal/handlers"
	"github.com/akolanti/SDKAssistant/internal/job"
	"github.com/akolanti/SDKAssistant/internal/middleware"
	"github.com/akolanti/SDKAssistant/internal/worker"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

type RunParams struct {
	Container     *bootstrap.Container
	ListenAddr    string
	CloseServices context.CancelFunc
}

// Run wires the handlers and the reindex worker pool, serves until SIGINT or SIGTERM and
// then shuts everything down in order.
func Run(params RunParams) error {
	logger := logger_i.NewLogger("main")
	_logger = logger_i.NewLogger("Server")
	c := params.Container

	middleware.Init(c.Settings)

	if err := c.CheckAgent(); err != nil {
		logger.Error("One or more external services failed to initialize. Shutting down.", "error", err)
		return err
	}
	ragService, err := c.RagService()
	if err != nil {
		return err
	}
	tok, err := c.Tokenizer()
	if err != nil {
		return err
	}

	//init buffered job channel
	jobChannel := make(chan jobModel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel := make(chan bool, 1)
	var workerWaitGroup sync.WaitGroup

	logger.Info("Starting job service")
	service := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		DispatcherChannel: dispatcherChannel,
		JobStore:          c.JobStore(),
	})

	handlers.InitJobHandler(service)
	handlers.InitChatHandler(c.NewAgent, tok)
	handlers.InitSessionHandler(c.Sessions())

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	go ShutDownHandler(ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    params.CloseServices,
	})
	go CreateServer(params.ListenAddr)

	<-stopExecution
	logger.Info("Server stopped")
	return nil
}

// ListenAddr picks the flag value over the environment.
func ListenAddr(flagValue string, settings config.Settings) string {
	if flagValue != "" {
		return flagValue
	}
	if settings.ServerListenAddr != "" {
		return settings.ServerListenAddr
	}
	return config.ServerListenAddr
}
