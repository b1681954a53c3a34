package server

import (
	"net/http"
	"testing"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/go-chi/chi/v5"
)

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	Routes(r)

	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodGet, "/", true},
		{http.MethodPost, "/chat", true},
		{http.MethodGet, "/chat", false},
		{http.MethodPost, "/sessions", true},
		{http.MethodPost, "/sessions/abc/messages", true},
		{http.MethodGet, "/sessions/abc/messages", true},
		{http.MethodDelete, "/sessions/abc", true},
		{http.MethodGet, "/sessions/abc", false},
		{http.MethodPost, "/ingest", true},
		{http.MethodGet, "/status/job-1", true},
		{http.MethodGet, "/unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if got := r.Match(chi.NewRouteContext(), tt.method, tt.path); got != tt.want {
				t.Errorf("Match(%s %s) = %v, want %v", tt.method, tt.path, got, tt.want)
			}
		})
	}
}

func TestListenAddr(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		settings string
		want     string
	}{
		{"flag wins", ":9000", ":8000", ":9000"},
		{"settings", "", ":8000", ":8000"},
		{"default", "", "", config.ServerListenAddr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.Settings{ServerListenAddr: tt.settings}
			if got := ListenAddr(tt.flag, settings); got != tt.want {
				t.Errorf("ListenAddr = %q, want %q", got, tt.want)
			}
		})
	}
}
