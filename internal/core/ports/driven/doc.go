// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - VectorStore: persists contrast examples with embeddings and serves
//     similarity search
//   - EmbeddingService: generates vector embeddings for indexing and queries
//   - Tokenizer: measures text size for budget accounting
//
// # Optional Interfaces
//
//   - TextGenerator: language model text generation. Only the external
//     authoring workflow consumes it; the retrieval engine never does.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
