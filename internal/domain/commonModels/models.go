package commonModels

type DocType string

const (
	Documentation DocType = "documentation"
	Example       DocType = "example"
)

// Document is one scraped page or example file.
type Document struct {
	SourcePath       string  `json:"source_path"`
	SourceURL        string  `json:"source_url"`
	DocumentationURL string  `json:"documentation_url"`
	Content          string  `json:"content"`
	Type             DocType `json:"type"`
}

// Split is a section of a Document. The splits of a document, ordered by SplitPart,
// concatenate back to the document content.
type Split struct {
	Document
	SplitPart int `json:"split_part"`
}

type DocChunk struct {
	Split
	ChunkId       string `json:"chunk_id"`
	Chunk         int    `json:"chunk"`
	Text          string `json:"document"`
	EmbeddingText string `json:"embedding_text"`
}

// ChunkMetadata is what the vector index hands back for a hit. Content is the whole split.
type ChunkMetadata struct {
	SourcePath       string  `json:"source_path"`
	SourceURL        string  `json:"source_url"`
	DocumentationURL string  `json:"documentation_url"`
	Content          string  `json:"content"`
	Type             DocType `json:"type"`
	SplitPart        int     `json:"split_part"`
	Chunk            int     `json:"chunk"`
	Score            float32 `json:"score"`
}
