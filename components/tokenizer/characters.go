package tokenizer

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// EncodingCharacters is the name of the character based encoding
const EncodingCharacters = "characters"

// Characters is the model-agnostic fallback: every unicode codepoint is one
// token and its id is the codepoint itself. Invalid UTF-8 bytes encode to
// utf8.RuneError, so only valid UTF-8 round trips losslessly.
type Characters struct{}

var _ Tokenizer = Characters{}

func (Characters) Name() string {
	return EncodingCharacters
}

func (Characters) Encode(ctx context.Context, text string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := make([]int, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		tokens = append(tokens, int(r))
	}
	return tokens, nil
}

func (Characters) Decode(ctx context.Context, tokens []int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	buf := make([]byte, 0, len(tokens))
	for _, id := range tokens {
		if id < 0 || id > utf8.MaxRune || !utf8.ValidRune(rune(id)) {
			return "", fmt.Errorf("invalid character token %d", id)
		}
		buf = utf8.AppendRune(buf, rune(id))
	}
	return string(buf), nil
}
