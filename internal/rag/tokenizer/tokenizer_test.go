package tokenizer

import (
	"strings"
	"testing"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountTokens(t *testing.T) {
	tok, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 0, tok.CountTokens(""))
	assert.Equal(t, 2, tok.CountTokens("hello world"))
	assert.Equal(t, tok.CountTokens("deterministic text"), tok.CountTokens("deterministic text"))
	// special tokens are plain text
	assert.Greater(t, tok.CountTokens("<|endoftext|>"), 1)
}

func TestTruncate(t *testing.T) {
	tok := MustGet()
	texts := []string{
		"",
		"short",
		strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50),
		strings.Repeat("žluťoučký kůň úpěl ďábelské ódy 🐎 ", 40),
		strings.Repeat("日本語のテキスト", 60),
	}

	for _, text := range texts {
		for _, n := range []int{1, 3, 10, 50, 1000} {
			result := tok.Truncate(text, n)
			assert.LessOrEqual(t, tok.CountTokens(result), n, "text %q limit %d", text, n)
			if tok.CountTokens(text) <= n {
				assert.Equal(t, text, result)
			}
		}
	}
	assert.Equal(t, "", tok.Truncate("anything", 0))
}

func TestTokenLimits(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{config.ModelGPT35Turbo, (16385 - 1000 - 4096) / 2},
		{config.ModelGPT4, (8192 - 1000 - 4096) / 2},
		{config.ModelGPT4TurboPreview, (128000 - 1000 - 4096) / 2},
		{"unknown", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InputTokenLimit(tt.model), tt.model)
		assert.Equal(t, tt.want, MemoryTokenLimit(tt.model), tt.model)
	}
}

func TestShortenInput(t *testing.T) {
	tok := MustGet()

	text, cut := tok.ShortenInput("Who are you?", config.ModelGPT4)
	assert.False(t, cut)
	assert.Equal(t, "Who are you?", text)

	long := strings.Repeat("token ", 5000)
	text, cut = tok.ShortenInput(long, config.ModelGPT4)
	assert.True(t, cut)
	assert.LessOrEqual(t, tok.CountTokens(text), InputTokenLimit(config.ModelGPT4))
	assert.True(t, strings.HasPrefix(long, text))
}
