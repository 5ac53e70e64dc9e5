package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//
// Decorators wrapping another EmbeddingService add caching or rate limiting
// without the stores knowing.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g. 768, 1536).
	// Fixed per provider and model.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
