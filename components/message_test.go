package components

import (
	"testing"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOverflow(t *testing.T) {
	m := NewMemory(2)
	m.NewTurn()
	m.NewMessage(UserRole, "one")
	m.NewMessage(AssistantRole, "two")
	m.NewMessage(UserRole, "three")
	require.Equal(t, 2, m.MessageCount())
	history := m.History()
	assert.Equal(t, "two", history[0].Content())
	assert.Equal(t, "three", history[1].Content())
	assert.Equal(t, m.TurnID(), history[1].TurnID())
}

func TestMemoryTranscript(t *testing.T) {
	m := NewMemory(0)
	assert.Equal(t, "", m.Transcript())
	m.NewMessage(SystemRole, "be brief")
	m.NewMessage(UserRole, "hello\nthere")
	assert.Equal(t, "system: be brief\nuser: hello\nthere", m.Transcript())
}

func TestMemoryDeleteTurn(t *testing.T) {
	m := NewMemory(10)
	m.NewTurn()
	first := m.TurnID()
	m.NewMessage(UserRole, "q1")
	m.NewTurn()
	second := m.TurnID()
	m.NewMessage(UserRole, "q2")

	require.NoError(t, m.DeleteTurn(second))
	assert.Equal(t, first, m.TurnID())
	assert.Equal(t, 1, m.MessageCount())
	assert.Error(t, m.DeleteTurn("missing"))

	m.Reset()
	assert.Zero(t, m.MessageCount())
	assert.Empty(t, m.TurnID())
}

func TestMessageConversion(t *testing.T) {
	msg := NewMessage(AssistantRole, "hi")
	var oai openai.ChatCompletionMessage
	msg.ToOpenAI(&oai)
	assert.Equal(t, openai.ChatMessageRoleAssistant, oai.Role)
	assert.Equal(t, "hi", oai.Content)

	var am anthropic.Message
	NewMessage(SystemRole, "rules").ToAnthropic(&am)
	assert.Equal(t, anthropic.RoleUser, am.Role)
	require.Len(t, am.Content, 1)
	assert.Equal(t, "rules", am.Content[0].GetText())
}

func TestLLMResponseFromOpenAI(t *testing.T) {
	var resp LLMResponse
	resp.FromOpenAI(&openai.ChatCompletionResponse{
		ID:    "chatcmpl-1",
		Model: "gpt-4",
		Usage: openai.Usage{PromptTokens: 12, CompletionTokens: 3},
	})
	assert.Equal(t, "chatcmpl-1", resp.ID)
	assert.Equal(t, AssistantRole, resp.Role)
	assert.Equal(t, int64(12), resp.Usage.InputTokens)

	total := new(LLMUsage)
	total.Merge(resp.Usage)
	total.Merge(resp.Usage)
	total.Merge(nil)
	assert.Equal(t, int64(24), total.InputTokens)
	assert.Equal(t, int64(6), total.OutputTokens)
}
