package anthropic

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/bububa/tokenkit/components"
	"github.com/bububa/tokenkit/components/llm"
	"github.com/bububa/tokenkit/components/tokenizer"
)

// DefaultMaxTokens is sent when no max tokens option is set; the messages API requires one.
const DefaultMaxTokens = 1024

// Messenger is the part of *anthropic.Client the adapter needs
type Messenger interface {
	CreateMessages(ctx context.Context, request anthropic.MessagesRequest) (anthropic.MessagesResponse, error)
}

type LLM struct {
	client Messenger

	llm.Options
}

var _ components.LLM = (*LLM)(nil)

func New(client Messenger, opts ...llm.Option) *LLM {
	i := &LLM{
		client: client,
	}
	for _, opt := range opts {
		opt(&i.Options)
	}
	return i
}

// NewWithKey builds the adapter on a go-anthropic client; baseURL may be empty.
func NewWithKey(authToken string, baseURL string, opts ...llm.Option) *LLM {
	clientOpts := make([]anthropic.ClientOption, 0, 1)
	if baseURL != "" {
		clientOpts = append(clientOpts, anthropic.WithBaseURL(baseURL))
	}
	return New(anthropic.NewClient(authToken, clientOpts...), opts...)
}

func (p *LLM) Provider() tokenizer.Provider {
	return tokenizer.ProviderAnthropic
}

func (p *LLM) Generate(ctx context.Context, prompt string, resp *components.LLMResponse) (string, error) {
	var msg anthropic.Message
	components.NewMessage(components.UserRole, prompt).ToAnthropic(&msg)
	maxTokens := p.MaxTokens()
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	req := anthropic.MessagesRequest{
		Model:     anthropic.Model(p.Model()),
		Messages:  []anthropic.Message{msg},
		MaxTokens: maxTokens,
		System:    p.SystemPrompt(),
	}
	if temperature := p.Temperature(); temperature > 0 {
		req.Temperature = &temperature
	}
	ret, err := p.client.CreateMessages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("anthropic create messages: %w", err)
	}
	if resp != nil {
		resp.FromAnthropic(&ret)
	}
	var sb strings.Builder
	for _, content := range ret.Content {
		if content.Type == anthropic.MessagesContentTypeText {
			sb.WriteString(content.GetText())
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic: %w", llm.ErrEmptyResponse)
	}
	return sb.String(), nil
}
