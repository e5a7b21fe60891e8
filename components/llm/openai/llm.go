package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bububa/tokenkit/components"
	"github.com/bububa/tokenkit/components/llm"
	"github.com/bububa/tokenkit/components/tokenizer"
)

// ChatCompleter is the part of *openai.Client the adapter needs
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type LLM struct {
	client ChatCompleter

	llm.Options
}

var _ components.LLM = (*LLM)(nil)

func New(client ChatCompleter, opts ...llm.Option) *LLM {
	i := &LLM{
		client: client,
	}
	for _, opt := range opts {
		opt(&i.Options)
	}
	return i
}

// NewWithKey builds the adapter on a go-openai client; baseURL may be empty.
func NewWithKey(authToken string, baseURL string, opts ...llm.Option) *LLM {
	cfg := openai.DefaultConfig(authToken)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return New(openai.NewClientWithConfig(cfg), opts...)
}

func (p *LLM) Provider() tokenizer.Provider {
	return tokenizer.ProviderOpenAI
}

func (p *LLM) Generate(ctx context.Context, prompt string, resp *components.LLMResponse) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system := p.SystemPrompt(); system != "" {
		var msg openai.ChatCompletionMessage
		components.NewMessage(components.SystemRole, system).ToOpenAI(&msg)
		messages = append(messages, msg)
	}
	var msg openai.ChatCompletionMessage
	components.NewMessage(components.UserRole, prompt).ToOpenAI(&msg)
	messages = append(messages, msg)
	req := openai.ChatCompletionRequest{
		Model:       p.Model(),
		Messages:    messages,
		MaxTokens:   p.MaxTokens(),
		Temperature: p.Temperature(),
	}
	ret, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if resp != nil {
		resp.FromOpenAI(&ret)
	}
	if len(ret.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", llm.ErrEmptyResponse)
	}
	return ret.Choices[0].Message.Content, nil
}
