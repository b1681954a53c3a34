package openaiEmbedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIEmbedder(config.OpenAIEmbeddingModel,
		option.WithBaseURL(srv.URL+"/"),
		option.WithAPIKey("test-key"),
		option.WithMaxRetries(0),
	).(*client)
}

func TestBatchEmbedding_OrdersByIndex(t *testing.T) {
	var body map[string]any
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","model":"text-embedding-3-large",
			"data":[{"object":"embedding","index":1,"embedding":[0.5,0.25]},
			        {"object":"embedding","index":0,"embedding":[1,0]}],
			"usage":{"prompt_tokens":2,"total_tokens":2}}`))
	})

	vectors, err := e.BatchEmbedding(context.Background(), []string{"first", "second"}, false)

	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0.5, 0.25}}, vectors)
	assert.Equal(t, config.OpenAIEmbeddingModel, body["model"])
	assert.Equal(t, []any{"first", "second"}, body["input"])
	assert.EqualValues(t, config.EmbeddingOutputDimensionality, body["dimensions"])
}

func TestBatchEmbedding_CountMismatch(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[1]}]}`))
	})

	_, err := e.BatchEmbedding(context.Background(), []string{"a", "b"}, false)
	assert.Error(t, err)
}

func TestGetEmbedding_UpstreamError(t *testing.T) {
	e := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	})

	_, err := e.GetEmbedding(context.Background(), "query")
	assert.Error(t, err)
}
