package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/akolanti/SDKAssistant/internal/rag/tokenizer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func charChunker(size, overlap int, separators ...string) Chunker {
	if len(separators) == 0 {
		separators = DefaultSeparators
	}
	return Chunker{Size: size, Overlap: overlap, Separators: separators, Length: utf8.RuneCountInString}
}

func TestSplitText_Recursive(t *testing.T) {
	text := "Hi.\n\nI'm Harrison.\n\nHow? Are? You?\nOkay then f f f f.\nThis is a weird text to write, but gotta test the splittingggg some how.\n\nBye!\n\n-H."
	want := []string{
		"Hi.", "I'm", "Harrison.", "How? Are?", "You?", "Okay then", "f f f f.", "This is a", "weird",
		"text to", "write,", "but gotta", "test the", "splitting", "gggg", "some how.", "Bye!", "-H.",
	}

	assert.Equal(t, want, charChunker(10, 1).SplitText(text))
}

func TestSplitText_KeepsSeparatorAtStart(t *testing.T) {
	got := charChunker(6, 0, "X", "Y").SplitText("....5X..3Y...4X....5Y...")

	assert.Equal(t, []string{"....5", "X..3", "Y...4", "X....5", "Y..."}, got)
}

func TestSplitText_Overlap(t *testing.T) {
	assert.Equal(t, []string{"abcd", "defg", "ghij"}, charChunker(4, 1).SplitText("abcdefghij"))
}

func TestSplitText_EdgeCases(t *testing.T) {
	c := charChunker(10, 2)
	assert.Empty(t, c.SplitText(""))
	assert.Empty(t, c.SplitText("  \n\n  "))
	assert.Equal(t, []string{"short"}, charChunker(300, 75).SplitText("  short\n"))
}

func TestSplitText_TokenBound(t *testing.T) {
	tok := tokenizer.MustGet()
	c := NewChunker(tok)
	text := strings.Repeat("The client exposes a text generation service.\nIt streams tokens.\n\n", 120)

	chunks := c.SplitText(text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, tok.CountTokens(chunk), c.Size)
		assert.Equal(t, strings.TrimSpace(chunk), chunk)
	}
}

func TestPrepareChunks(t *testing.T) {
	splits := []commonModels.Split{
		{Document: commonModels.Document{DocumentationURL: "https://docs/a.html", SourceURL: "a", Content: "alpha beta gamma delta"}, SplitPart: 0},
		{Document: commonModels.Document{DocumentationURL: "https://docs/b.html", SourceURL: "b", Content: "one"}, SplitPart: 2},
	}

	chunks := charChunker(12, 0).PrepareChunks(splits)

	require.Len(t, chunks, 3)
	assert.Equal(t, "alpha beta", chunks[0].Text)
	assert.Equal(t, "gamma delta", chunks[1].Text)
	assert.Equal(t, 1, chunks[1].Chunk)
	assert.Equal(t, "https://docs/a.html: gamma delta", chunks[1].EmbeddingText)
	assert.Equal(t, "alpha beta gamma delta", chunks[1].Content)

	assert.Equal(t, 0, chunks[2].Chunk)
	assert.Equal(t, 2, chunks[2].SplitPart)
	assert.Equal(t, "b", chunks[2].SourceURL)

	ids := map[string]bool{}
	for _, c := range chunks {
		_, err := uuid.Parse(c.ChunkId)
		assert.NoError(t, err)
		ids[c.ChunkId] = true
	}
	assert.Len(t, ids, 3)
}
