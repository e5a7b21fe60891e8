package tokenizer

import "context"

// Tokenizer defines the capability to turn text into token ids and back.
// Implementations must be safe for concurrent use.
type Tokenizer interface {
	// Name identifies the encoding, e.g. "cl100k_base" or "characters"
	Name() string
	// Encode returns the token ids of text
	Encode(ctx context.Context, text string) ([]int, error)
	// Decode returns the text represented by tokens
	Decode(ctx context.Context, tokens []int) (string, error)
}

// Count returns the number of tokens of text under tk.
func Count(ctx context.Context, tk Tokenizer, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	tokens, err := tk.Encode(ctx, text)
	if err != nil {
		return 0, Failure("tokenizer.Count", err)
	}
	return len(tokens), nil
}
