package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/akolanti/SDKAssistant/internal/domain/commonModels"
)

// ReadDocuments decodes a JSON array of documents, the output of the scraper.
func ReadDocuments(r io.Reader) ([]commonModels.Document, error) {
	var docs []commonModels.Document
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decoding documents: %w", err)
	}
	return docs, nil
}

// ReadSplits decodes a JSON array of splits, the output of the split command.
func ReadSplits(r io.Reader) ([]commonModels.Split, error) {
	var splits []commonModels.Split
	if err := json.NewDecoder(r).Decode(&splits); err != nil {
		return nil, fmt.Errorf("decoding splits: %w", err)
	}
	return splits, nil
}

func LoadDocuments(path string) ([]commonModels.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDocuments(f)
}

func LoadSplits(path string) ([]commonModels.Split, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSplits(f)
}

// SaveJSON writes v indented to path, replacing the file.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
