package driven

import "context"

// TextGenerator produces text from a prompt via a language model.
// Only the external authoring workflow consumes this capability; the
// retrieval engine itself never generates text.
type TextGenerator interface {
	// Generate returns the model's completion for prompt, bounded by
	// maxTokens.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}
