package customHttpClient

import (
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/SDKAssistant/internal/config"
)

var (
	once   sync.Once
	client *http.Client
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
	TLSHandshakeTimeout: 10 * time.Second,
}

// GetClient returns the pooled client shared by the LLM, embedding, fetch and interpreter calls.
// It has no overall timeout, callers bound requests with their context.
func GetClient() *http.Client {
	once.Do(func() {
		client = &http.Client{Transport: customTransport}
	})
	return client
}

// WithTimeout returns a client on the shared pool with its own overall timeout.
func WithTimeout(timeout time.Duration) *http.Client {
	return &http.Client{Transport: customTransport, Timeout: timeout}
}
