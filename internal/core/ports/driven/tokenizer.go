package driven

// Tokenizer measures text size in tokenizer units for budget accounting.
// The assembler treats it as a pure function.
type Tokenizer interface {
	// Count returns the number of tokens in text.
	Count(text string) int
}
