package components

import (
	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'assistant')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
)

// Message represents a message in the chat history.
type Message struct {
	// role is the role of the message sender
	role MessageRole
	// content is the text of the message
	content string
	// turnID is Unique identifier for the turn this message belongs to.
	turnID string
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content string) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() string {
	return m.content
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = m.role
	dist.Content = m.content
}

// ToAnthropic convert message to anthropic Message. System messages are sent
// through the request's System field, so they map to the user role here.
func (m Message) ToAnthropic(dist *anthropic.Message) {
	switch m.role {
	case AssistantRole:
		dist.Role = anthropic.RoleAssistant
	default:
		dist.Role = anthropic.RoleUser
	}
	dist.Content = []anthropic.MessageContent{anthropic.NewTextMessageContent(m.content)}
}
