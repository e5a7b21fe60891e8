package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/tokenkit/components"
	"github.com/bububa/tokenkit/components/llm"
	"github.com/bububa/tokenkit/components/tokenizer"
)

func TestGenerate(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-42",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "yes"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 9, "completion_tokens": 1, "total_tokens": 10}
		}`))
	}))
	defer srv.Close()

	clt := NewWithKey("test-key", srv.URL+"/v1", llm.WithModel("gpt-4"), llm.WithMaxTokens(16), llm.WithSystemPrompt("answer yes or no"))
	assert.Equal(t, tokenizer.ProviderOpenAI, clt.Provider())

	resp := new(components.LLMResponse)
	text, err := clt.Generate(context.Background(), "is the sky blue?", resp)
	require.NoError(t, err)
	assert.Equal(t, "yes", text)
	assert.Equal(t, "chatcmpl-42", resp.ID)
	assert.Equal(t, int64(9), resp.Usage.InputTokens)

	assert.Equal(t, "gpt-4", got.Model)
	assert.Equal(t, 16, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, "is the sky blue?", got.Messages[1].Content)
}

type fakeCompleter struct {
	resp openai.ChatCompletionResponse
	err  error
}

func (f fakeCompleter) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return f.resp, f.err
}

func TestGenerateErrors(t *testing.T) {
	_, err := New(fakeCompleter{}).Generate(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)

	cause := errors.New("rate limited")
	_, err = New(fakeCompleter{err: cause}).Generate(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, cause)
}
