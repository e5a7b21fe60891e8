package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bububa/tokenkit/components"
	"github.com/bububa/tokenkit/components/systemprompt"
	"github.com/bububa/tokenkit/components/tokenizer"
)

type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Provider() tokenizer.Provider { return tokenizer.ProviderOpenAI }

func (f *fakeLLM) Model() string { return "gpt-4" }

func (f *fakeLLM) Generate(_ context.Context, prompt string, resp *components.LLMResponse) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if resp != nil {
		resp.Usage = &components.LLMUsage{InputTokens: 3, OutputTokens: 1}
	}
	return f.reply, nil
}

func TestGenerateTextTrimsPrompt(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	g := NewGenerator(
		WithClient(fake),
		WithMaxPromptTokens(5),
		WithTokenizerContext(tokenizer.Context{Encoding: tokenizer.EncodingCharacters}),
	)
	reply, err := g.GenerateText(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	require.Len(t, fake.prompts, 1)
	assert.Equal(t, "world", fake.prompts[0])
	assert.Equal(t, components.LLMUsage{InputTokens: 3, OutputTokens: 1}, g.Usage())
}

func TestGenerateTextSystemPrompt(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	tcx := tokenizer.Context{Encoding: tokenizer.EncodingCharacters}
	g := NewGenerator(
		WithClient(fake),
		WithMaxPromptTokens(10),
		WithTokenizerContext(tcx),
		WithSystemPrompt(systemprompt.New("sys")),
	)
	_, err := g.GenerateText(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []string{"sys\n\nworld"}, fake.prompts)

	g = NewGenerator(
		WithClient(fake),
		WithMaxPromptTokens(4),
		WithTokenizerContext(tcx),
		WithSystemPrompt(systemprompt.New("sys")),
	)
	_, err = g.GenerateText(context.Background(), "hello")
	assert.True(t, tokenizer.IsInvalidArgument(err))
}

func TestGenerateTextShortPromptUnchanged(t *testing.T) {
	fake := &fakeLLM{reply: "ok"}
	g := NewGenerator(WithClient(fake))
	_, err := g.GenerateText(context.Background(), "short prompt")
	require.NoError(t, err)
	assert.Equal(t, []string{"short prompt"}, fake.prompts)
	assert.Equal(t, tokenizer.Context{Provider: tokenizer.ProviderOpenAI, Model: "gpt-4"}, g.TokenizerContext())
}

func TestGenerateTextMemory(t *testing.T) {
	fake := &fakeLLM{reply: "hello"}
	mem := components.NewMemory(0)
	g := NewGenerator(WithClient(fake), WithMemory(mem))
	ctx := context.Background()
	_, err := g.GenerateText(ctx, "hi")
	require.NoError(t, err)
	_, err = g.GenerateText(ctx, "again")
	require.NoError(t, err)

	require.Len(t, fake.prompts, 2)
	assert.Equal(t, "user: hi", fake.prompts[0])
	assert.Equal(t, "user: hi\nassistant: hello\nuser: again", fake.prompts[1])
	assert.Equal(t, 4, mem.MessageCount())
}

func TestGenerateTextErrors(t *testing.T) {
	ctx := context.Background()
	_, err := NewGenerator(WithClient(&fakeLLM{})).GenerateText(ctx, "  ")
	assert.True(t, tokenizer.IsInvalidArgument(err))

	_, err = NewGenerator().GenerateText(ctx, "hi")
	assert.ErrorIs(t, err, ErrNoClient)

	cause := errors.New("boom")
	mem := components.NewMemory(0)
	_, err = NewGenerator(WithClient(&fakeLLM{err: cause}), WithMemory(mem)).GenerateText(ctx, "hi")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, mem.MessageCount())
}

func TestGenerateTextFailedTurnDropped(t *testing.T) {
	ctx := context.Background()
	tcx := tokenizer.Context{Encoding: tokenizer.EncodingCharacters}
	mem := components.NewMemory(0)
	fake := &fakeLLM{reply: "hello"}
	g := NewGenerator(WithClient(fake), WithMemory(mem), WithTokenizerContext(tcx))
	_, err := g.GenerateText(ctx, "hi")
	require.NoError(t, err)
	firstTurn := mem.TurnID()

	fake.err = errors.New("boom")
	_, err = g.GenerateText(ctx, "lost")
	require.Error(t, err)
	assert.Equal(t, 2, mem.MessageCount())
	assert.Equal(t, firstTurn, mem.TurnID())

	fake.err = nil
	_, err = g.GenerateText(ctx, "again")
	require.NoError(t, err)
	assert.Equal(t, "user: hi\nassistant: hello\nuser: again", fake.prompts[len(fake.prompts)-1])

	tests := []struct {
		name string
		opts []Option
	}{
		{name: "system prompt over budget", opts: []Option{WithMaxPromptTokens(2), WithSystemPrompt(systemprompt.New("system"))}},
		{name: "llm failure", opts: []Option{WithClient(&fakeLLM{err: errors.New("boom")})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := components.NewMemory(0)
			opts := append([]Option{WithClient(&fakeLLM{reply: "ok"}), WithMemory(mem), WithTokenizerContext(tcx)}, tt.opts...)
			_, err := NewGenerator(opts...).GenerateText(ctx, "hi")
			require.Error(t, err)
			assert.Zero(t, mem.MessageCount())
			assert.Empty(t, mem.TurnID())
		})
	}
}

func TestGenerateBool(t *testing.T) {
	tests := []struct {
		reply   string
		want    bool
		wantErr bool
	}{
		{reply: "Yes.", want: true},
		{reply: "TRUE, it is", want: true},
		{reply: "no", want: false},
		{reply: "  False\n", want: false},
		{reply: "maybe", wantErr: true},
		{reply: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			g := NewGenerator(WithClient(&fakeLLM{reply: tt.reply}))
			got, err := g.GenerateBool(context.Background(), "question?")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotBoolean)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
