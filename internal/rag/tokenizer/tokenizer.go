package tokenizer

import (
	"fmt"
	"sync"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// Encoding is used for every model; counts are therefore comparable across models.
const Encoding = "cl100k_base"

type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

var (
	once     sync.Once
	instance *Tokenizer
	initErr  error
)

// Get returns the process wide tokenizer. The BPE ranks ship with the binary so no network is needed.
func Get() (*Tokenizer, error) {
	once.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
		enc, err := tiktoken.GetEncoding(Encoding)
		if err != nil {
			initErr = fmt.Errorf("loading %s encoding: %w", Encoding, err)
			return
		}
		instance = &Tokenizer{encoding: enc}
	})
	return instance, initErr
}

// MustGet is for wiring code where a missing tokenizer is a programming error.
func MustGet() *Tokenizer {
	t, err := Get()
	if err != nil {
		panic(err)
	}
	return t
}

// encode treats special token text as plain text.
func (t *Tokenizer) encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

func (t *Tokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(t.encode(text))
}

// Truncate keeps the longest token prefix that decodes to at most maxTokens tokens.
// Cutting inside a multi-byte character can leave a partial character at the end.
func (t *Tokenizer) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	tokens := t.encode(text)
	if len(tokens) <= maxTokens {
		return text
	}
	for n := maxTokens; n > 0; n-- {
		candidate := t.encoding.Decode(tokens[:n])
		if t.CountTokens(candidate) <= maxTokens {
			return candidate
		}
	}
	return ""
}

func universalTokenLimit(model string) int {
	window := config.ContextWindowSize(model)
	if window == 0 {
		return 0
	}
	return (window - config.ToolsAndSystemPromptLengthTokens - config.OutputTokenLimit) / 2
}

// InputTokenLimit is the budget for one user input including attachments.
func InputTokenLimit(model string) int {
	return universalTokenLimit(model)
}

// MemoryTokenLimit is the budget for the conversation memory, equal to the input budget.
func MemoryTokenLimit(model string) int {
	return universalTokenLimit(model)
}

// ShortenInput truncates text to the model's input budget and reports whether it was cut.
func (t *Tokenizer) ShortenInput(text string, model string) (string, bool) {
	limit := InputTokenLimit(model)
	if t.CountTokens(text) <= limit {
		return text, false
	}
	return t.Truncate(text, limit), true
}
