package ingest

import (
	"fmt"
	"strings"

	"github.com/akolanti/SDKAssistant/internal/adapter/utils"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/akolanti/SDKAssistant/internal/rag/tokenizer"
)

// DefaultSeparators are tried in order, from paragraph to single character.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Chunker cuts split content into pieces of at most Size units measured by Length.
// A separator stays at the start of the piece that follows it.
type Chunker struct {
	Size       int
	Overlap    int
	Separators []string
	Length     func(string) int
}

func NewChunker(tok *tokenizer.Tokenizer) Chunker {
	return Chunker{
		Size:       config.ChunkSizeTokens,
		Overlap:    config.ChunkOverlapTokens,
		Separators: DefaultSeparators,
		Length:     tok.CountTokens,
	}
}

func (c Chunker) SplitText(text string) []string {
	separators := c.Separators
	if len(separators) == 0 {
		separators = DefaultSeparators
	}
	return c.splitText(text, separators)
}

func (c Chunker) splitText(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var finer []string
	for i, s := range separators {
		if s == "" {
			separator = s
			break
		}
		if strings.Contains(text, s) {
			separator = s
			finer = separators[i+1:]
			break
		}
	}

	var chunks []string
	var fitting []string
	for _, piece := range splitKeepingSeparator(text, separator) {
		if c.Length(piece) < c.Size {
			fitting = append(fitting, piece)
			continue
		}
		if len(fitting) > 0 {
			chunks = append(chunks, c.mergePieces(fitting)...)
			fitting = nil
		}
		if len(finer) == 0 {
			if trimmed := strings.TrimSpace(piece); trimmed != "" {
				chunks = append(chunks, trimmed)
			}
			continue
		}
		chunks = append(chunks, c.splitText(piece, finer)...)
	}
	if len(fitting) > 0 {
		chunks = append(chunks, c.mergePieces(fitting)...)
	}
	return chunks
}

// mergePieces packs consecutive pieces into chunks and carries up to Overlap units
// of the previous chunk into the next one.
func (c Chunker) mergePieces(pieces []string) []string {
	var chunks []string
	var current []string
	var lengths []int
	total := 0

	flush := func() {
		if chunk := strings.TrimSpace(strings.Join(current, "")); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, piece := range pieces {
		length := c.Length(piece)
		if total+length > c.Size && len(current) > 0 {
			flush()
			for total > c.Overlap || (total+length > c.Size && total > 0) {
				total -= lengths[0]
				current = current[1:]
				lengths = lengths[1:]
			}
		}
		current = append(current, piece)
		lengths = append(lengths, length)
		total += length
	}
	flush()
	return chunks
}

func splitKeepingSeparator(text string, separator string) []string {
	var pieces []string
	if separator == "" {
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
		return pieces
	}
	parts := strings.Split(text, separator)
	if parts[0] != "" {
		pieces = append(pieces, parts[0])
	}
	for _, part := range parts[1:] {
		pieces = append(pieces, separator+part)
	}
	return pieces
}

// PrepareChunks chunks every split and tags each chunk with its split, ordinal and a fresh id.
func (c Chunker) PrepareChunks(splits []commonModels.Split) []commonModels.DocChunk {
	var allChunks []commonModels.DocChunk
	for _, split := range splits {
		for i, text := range c.SplitText(split.Content) {
			allChunks = append(allChunks, commonModels.DocChunk{
				Split:         split,
				ChunkId:       utils.GetNewUUID(),
				Chunk:         i,
				Text:          text,
				EmbeddingText: EmbeddingText(split.DocumentationURL, text),
			})
		}
	}
	return allChunks
}

func EmbeddingText(documentationURL string, chunk string) string {
	return fmt.Sprintf("%s: %s", documentationURL, chunk)
}
