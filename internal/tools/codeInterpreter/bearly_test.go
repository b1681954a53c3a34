package codeInterpreter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

func TestInvoke(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"stdoutBasesixtyfour":"` + b64("4\n") + `","stderrBasesixtyfour":"","fileLinks":null,"exitCode":0}`))
	}))
	defer srv.Close()

	out, err := New("secret").WithURL(srv.URL).Invoke(context.Background(), "```python\nprint(2+2)\n```")

	require.NoError(t, err)
	assert.JSONEq(t, `{"stdout":"4\n","stderr":"","fileLinks":[],"exitCode":0}`, out)
	assert.Equal(t, b64("print(2+2)"), got.FileContents)
	assert.Equal(t, "output/", got.OutputDir)
	assert.True(t, got.OutputAsLinks)
}

func TestInvoke_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New("bad").WithURL(srv.URL).Invoke(context.Background(), "print(1)")
	assert.Error(t, err)

	_, err = New("").Invoke(context.Background(), "print(1)")
	assert.Error(t, err)
}

func TestStripMarkdownCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"print(1)", "print(1)"},
		{"```python\nprint(1)\n```", "print(1)"},
		{"```\nprint(1)\n```", "print(1)"},
		{"  ```py\nx = 1\nprint(x)\n```  ", "x = 1\nprint(x)"},
		{"```print(1)```", "print(1)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripMarkdownCode(tt.in), tt.in)
	}
}
