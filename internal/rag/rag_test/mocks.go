package rag_test

import (
	"context"

	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	OnSearch             func(ctx context.Context, collection string, vectorVal []float32, limit uint64) ([]commonModels.ChunkMetadata, error)
	OnCreateCollection   func(ctx context.Context, name string) error
	OnRecreateCollection func(ctx context.Context, name string) error
	OnUpsertBatch        func(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error
}

func (m *MockVectorDB) Search(ctx context.Context, collection string, v []float32, limit uint64) ([]commonModels.ChunkMetadata, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, collection, v, limit)
	}
	return nil, nil
}

func (m *MockVectorDB) CreateCollection(ctx context.Context, name string) error {
	if m.OnCreateCollection != nil {
		return m.OnCreateCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) RecreateCollection(ctx context.Context, name string) error {
	if m.OnRecreateCollection != nil {
		return m.OnRecreateCollection(ctx, name)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, name, chunks, vectors)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks, isHuge)
	}
	// Return dummy vectors matching chunk size
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}
