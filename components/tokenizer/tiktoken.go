package tokenizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TikToken provides byte-level BPE tokenization using the tiktoken library,
// which implements the tokenization schemes used by OpenAI models.
type TikToken struct {
	name string
	tke  *tiktoken.Tiktoken
}

var _ Tokenizer = (*TikToken)(nil)

// NewTikToken creates a new TikToken using the specified encoding.
// Common encodings include:
// - "o200k_base" (GPT-4o)
// - "cl100k_base" (GPT-4, ChatGPT)
// - "p50k_base" (GPT-3)
// - "r50k_base" (Codex)
func NewTikToken(encoding string) (*TikToken, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %s: %w", encoding, err)
	}
	return &TikToken{name: encoding, tke: tke}, nil
}

// NewTikTokenForModel creates a new TikToken with the encoding of an OpenAI model name.
func NewTikTokenForModel(model string) (*TikToken, error) {
	encoding, ok := tiktoken.MODEL_TO_ENCODING[model]
	if !ok {
		for prefix, v := range tiktoken.MODEL_PREFIX_TO_ENCODING {
			if strings.HasPrefix(model, prefix) {
				encoding = v
				ok = true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("no encoding for model %s", model)
	}
	return NewTikToken(encoding)
}

func (t *TikToken) Name() string {
	return t.name
}

// Encode treats special token markers in text as ordinary text, so decode(encode(text)) == text.
func (t *TikToken) Encode(ctx context.Context, text string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.tke.Encode(text, nil, nil), nil
}

// Decode returns the concatenated bytes of tokens. A slice that starts or ends
// inside a multi-byte character decodes to a string holding the partial bytes.
func (t *TikToken) Decode(ctx context.Context, tokens []int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return t.tke.Decode(tokens), nil
}
