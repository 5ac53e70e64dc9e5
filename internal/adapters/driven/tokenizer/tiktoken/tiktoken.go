// Package tiktoken counts tokens with the cl100k_base BPE encoding used
// by current OpenAI models, so budget maths matches what the API bills.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Encoding is the BPE encoding used for counting.
const Encoding = "cl100k_base"

// Tokenizer counts tokens using a tiktoken encoding.
type Tokenizer struct {
	encoding *tiktoken.Tiktoken
}

// New loads the cl100k_base encoding. The encoding data is fetched on
// first use, so this can fail offline; callers fall back to the approx
// tokenizer in that case.
func New() (*Tokenizer, error) {
	encoding, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", Encoding, err)
	}
	return &Tokenizer{encoding: encoding}, nil
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	return len(t.encoding.Encode(text, nil, nil))
}
