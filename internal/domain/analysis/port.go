package analysis

import "context"

// Completer port (interface for the LLM provider)
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// DocumentExtractor port (interface for document-to-text extraction)
type DocumentExtractor interface {
	Text(filename string, data []byte) (string, error)
}

// Repository port (interface for persistence)
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Paginate(ctx context.Context, page, pageSize int) ([]*Record, error)
}

// ArtifactStore port (interface for storing uploaded documents)
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
