package cohere

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereOption "github.com/cohere-ai/cohere-go/v2/option"

	"github.com/bububa/tokenkit/components/tokenizer"
)

// MaxTextChars is the longest text the tokenize endpoint accepts in one request
const MaxTextChars = 65536

// ErrNoModel is returned by Strategy when the context names no model
var ErrNoModel = errors.New("cohere tokenizer needs a model")

// Client is the part of *cohereClient.Client the tokenizer needs
type Client interface {
	Tokenize(ctx context.Context, req *cohere.TokenizeRequest, opts ...cohereOption.RequestOption) (*cohere.TokenizeResponse, error)
	Detokenize(ctx context.Context, req *cohere.DetokenizeRequest, opts ...cohereOption.RequestOption) (*cohere.DetokenizeResponse, error)
}

// Tokenizer counts tokens with the tokenizer of a Cohere model through the
// tokenize and detokenize endpoints. Every call is a request, so it does not
// offer per token alignment.
type Tokenizer struct {
	client Client
	model  string
}

var (
	_ tokenizer.Tokenizer = (*Tokenizer)(nil)
	_ tokenizer.Aligner   = (*Tokenizer)(nil)
)

func New(client Client, model string) *Tokenizer {
	return &Tokenizer{
		client: client,
		model:  model,
	}
}

// Strategy resolves Cohere contexts to a Tokenizer of the context's model
func Strategy(client Client) tokenizer.ResolveFunc {
	return func(tcx tokenizer.Context) (tokenizer.Tokenizer, error) {
		if tcx.Model == "" {
			return nil, ErrNoModel
		}
		return New(client, tcx.Model), nil
	}
}

func (t *Tokenizer) Name() string {
	return "cohere:" + t.model
}

func (t *Tokenizer) Aligned() bool {
	return false
}

// Encode tokenizes text, splitting it into requests of at most MaxTextChars runes
func (t *Tokenizer) Encode(ctx context.Context, text string) ([]int, error) {
	tokens := make([]int, 0, len(text)/4+1)
	for text != "" {
		part := text
		if utf8.RuneCountInString(part) > MaxTextChars {
			var n, cut int
			for cut = range part {
				if n == MaxTextChars {
					break
				}
				n++
			}
			part = part[:cut]
		}
		resp, err := t.client.Tokenize(ctx, &cohere.TokenizeRequest{
			Text:  part,
			Model: t.model,
		})
		if err != nil {
			return nil, fmt.Errorf("cohere tokenize: %w", err)
		}
		tokens = append(tokens, resp.Tokens...)
		text = text[len(part):]
	}
	return tokens, nil
}

func (t *Tokenizer) Decode(ctx context.Context, tokens []int) (string, error) {
	if len(tokens) == 0 {
		return "", nil
	}
	resp, err := t.client.Detokenize(ctx, &cohere.DetokenizeRequest{
		Tokens: tokens,
		Model:  t.model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere detokenize: %w", err)
	}
	return resp.Text, nil
}
