package anthropic

import (
	"context"
	"errors"
	"testing"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/tokenkit/components"
	"github.com/bububa/tokenkit/components/llm"
	"github.com/bububa/tokenkit/components/tokenizer"
)

type fakeMessenger struct {
	req  anthropic.MessagesRequest
	resp anthropic.MessagesResponse
	err  error
}

func (f *fakeMessenger) CreateMessages(_ context.Context, req anthropic.MessagesRequest) (anthropic.MessagesResponse, error) {
	f.req = req
	return f.resp, f.err
}

func TestGenerate(t *testing.T) {
	fake := &fakeMessenger{
		resp: anthropic.MessagesResponse{
			ID:      "msg_1",
			Model:   anthropic.Model("claude-3-5-haiku-latest"),
			Content: []anthropic.MessageContent{anthropic.NewTextMessageContent("no")},
		},
	}
	clt := New(fake, llm.WithModel("claude-3-5-haiku-latest"), llm.WithSystemPrompt("be terse"))
	assert.Equal(t, tokenizer.ProviderAnthropic, clt.Provider())

	resp := new(components.LLMResponse)
	text, err := clt.Generate(context.Background(), "is water dry?", resp)
	require.NoError(t, err)
	assert.Equal(t, "no", text)
	assert.Equal(t, "msg_1", resp.ID)

	assert.Equal(t, DefaultMaxTokens, fake.req.MaxTokens)
	assert.Equal(t, "be terse", fake.req.System)
	require.Len(t, fake.req.Messages, 1)
	assert.Equal(t, anthropic.RoleUser, fake.req.Messages[0].Role)
	assert.Nil(t, fake.req.Temperature)
}

func TestGenerateErrors(t *testing.T) {
	_, err := New(&fakeMessenger{}).Generate(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)

	cause := errors.New("overloaded")
	_, err = New(&fakeMessenger{err: cause}).Generate(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, cause)
}
