package utils

import (
	"net/http"
	"sync"

	_ "github.com/akolanti/SDKAssistant/cmd/api/docs"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/http-swagger"
)

var once sync.Once
var router *chi.Mux

// GetNewUUID is used for session, job, chunk and trace ids.
func GetNewUUID() string {
	return uuid.New().String()
}

type RouterClient struct {
	Router *chi.Mux
}

func GetChiURLParam(request *http.Request, key string) string {
	return chi.URLParam(request, key)
}

// GetRouter returns the process wide router with swagger, /metrics and panic recovery mounted.
func GetRouter() RouterClient {
	once.Do(func() {
		router = newRouter()
	})
	return RouterClient{Router: router}
}

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	// before the rate limiter reads RemoteAddr
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)

	InitSwagger(r)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func InitSwagger(r chi.Router) {
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
