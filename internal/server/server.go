package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/SDKAssistant/internal/adapter/utils"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/middleware"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

// Routes mounts the public API. Every handler goes through the trace, auth and rate limit chain.
func Routes(r chi.Router) {
	r.Get("/", middleware.GetHandler)
	r.Post("/chat", middleware.ChatHandler)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", middleware.CreateSessionHandler)
		r.Delete("/{id}", middleware.DeleteSessionHandler)
		r.Post("/{id}/messages", middleware.PostSessionMessageHandler)
		r.Get("/{id}/messages", middleware.GetSessionMessagesHandler)
	})

	// reindex jobs
	r.Post("/ingest", middleware.PostIngestHandler)
	r.Get("/status/{id}", middleware.GetStatusHandler)
}

func newHTTPServer(listenAddr string, handler http.Handler) *http.Server {
	// WriteTimeout bounds a whole SSE answer, see config.WriteTimeout
	return &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
}

func CreateServer(listenAddr string) {
	r := utils.GetRouter()
	Routes(r.Router)
	server = newHTTPServer(listenAddr, r.Router)

	_logger.Info("Server is listening", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err, "addr", listenAddr)
	}
}

// ShutDownHandler waits for a signal, drains HTTP, stops the reindex workers, closes the
// external clients and finally releases Run. It exits the process if that takes longer than
// config.ShutdownContextTimeout.
func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		if server != nil {
			server.SetKeepAlivesEnabled(false)
			if err := server.Shutdown(ctx); err != nil {
				_logger.Error("Could not shutdown gracefully", "error", err)
			}
		}

		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Shut down gracefully")
	case <-ctx.Done():
		_logger.Error("Shutdown timed out, forcing exit")
		os.Exit(1)
	}
}
