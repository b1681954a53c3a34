package qdrantDB

import (
	"testing"

	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
	"github.com/qdrant/go-client/qdrant"
)

func TestPayload_KeepsRetrievalIdentity(t *testing.T) {
	chunk := commonModels.DocChunk{
		Split: commonModels.Split{
			Document: commonModels.Document{
				SourcePath:       "documentation/source/changelog.rst",
				SourceURL:        "https://raw.githubusercontent.com/IBM/ibm-generative-ai/main/documentation/source/changelog.rst",
				DocumentationURL: "https://ibm.github.io/ibm-generative-ai/main/changelog.html",
				Content:          "v2.2.0\n------\nwhole split",
				Type:             commonModels.Documentation,
			},
			SplitPart: 3,
		},
		ChunkId:       "0b5d8c1e-3c9b-4f4e-9d7a-2f8a0e3c6b11",
		Chunk:         7,
		Text:          "whole split",
		EmbeddingText: "https://ibm.github.io/ibm-generative-ai/main/changelog.html: whole split",
	}

	got := fromPayload(qdrant.NewValueMap(toPayload(chunk)), 0.42)

	if got.SourceURL != chunk.SourceURL || got.SplitPart != 3 || got.Chunk != 7 {
		t.Errorf("identity mismatch: %+v", got)
	}
	if got.Content != chunk.Content {
		t.Errorf("payload must carry the split content, got %q", got.Content)
	}
	if got.Type != commonModels.Documentation || got.Score != 0.42 {
		t.Errorf("metadata mismatch: %+v", got)
	}
}

func TestFromPayload_MissingFields(t *testing.T) {
	got := fromPayload(map[string]*qdrant.Value{}, 0)
	if got.SourceURL != "" || got.SplitPart != 0 {
		t.Errorf("expected zero metadata, got %+v", got)
	}
}
