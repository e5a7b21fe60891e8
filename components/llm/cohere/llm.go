package cohere

import (
	"context"
	"fmt"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"
	cohereOption "github.com/cohere-ai/cohere-go/v2/option"

	"github.com/bububa/tokenkit/components"
	"github.com/bububa/tokenkit/components/llm"
	"github.com/bububa/tokenkit/components/tokenizer"
)

// Chatter is the part of *cohereClient.Client the adapter needs
type Chatter interface {
	Chat(ctx context.Context, req *cohere.ChatRequest, opts ...cohereOption.RequestOption) (*cohere.NonStreamedChatResponse, error)
}

type LLM struct {
	client Chatter

	llm.Options
}

var _ components.LLM = (*LLM)(nil)

func New(client Chatter, opts ...llm.Option) *LLM {
	i := &LLM{
		client: client,
	}
	for _, opt := range opts {
		opt(&i.Options)
	}
	return i
}

// NewClient builds a cohere-go client; baseURL may be empty.
// The client also serves the cohere tokenizer strategy.
func NewClient(authToken string, baseURL string) *cohereClient.Client {
	opts := make([]cohereOption.RequestOption, 0, 2)
	opts = append(opts, cohereOption.WithToken(authToken))
	if baseURL != "" {
		opts = append(opts, cohereOption.WithBaseURL(baseURL))
	}
	return cohereClient.NewClient(opts...)
}

// NewWithKey builds the adapter on a cohere-go client; baseURL may be empty.
func NewWithKey(authToken string, baseURL string, opts ...llm.Option) *LLM {
	return New(NewClient(authToken, baseURL), opts...)
}

func (p *LLM) Provider() tokenizer.Provider {
	return tokenizer.ProviderCohere
}

func (p *LLM) Generate(ctx context.Context, prompt string, resp *components.LLMResponse) (string, error) {
	model := p.Model()
	req := cohere.ChatRequest{
		Message: prompt,
		Model:   &model,
	}
	if system := p.SystemPrompt(); system != "" {
		req.Preamble = &system
	}
	if maxTokens := p.MaxTokens(); maxTokens > 0 {
		req.MaxTokens = &maxTokens
	}
	if temperature := float64(p.Temperature()); temperature > 0 {
		req.Temperature = &temperature
	}
	ret, err := p.client.Chat(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("cohere chat: %w", err)
	}
	if resp != nil {
		resp.FromCohere(ret)
	}
	if ret.Text == "" {
		return "", fmt.Errorf("cohere: %w", llm.ErrEmptyResponse)
	}
	return ret.Text, nil
}
