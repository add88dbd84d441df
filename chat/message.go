package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the role of a message sender in a conversation.
type Role string

const (
	// RoleSystem represents system-level instructions or context.
	RoleSystem Role = "system"

	// RoleUser represents messages from the user.
	RoleUser Role = "user"

	// RoleAssistant represents messages from the RAG assistant.
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// Source is a retrieval citation attached to an assistant answer: the
// document (or graph entity) the answer was grounded on.
type Source struct {
	// DocumentID identifies the source document or entity.
	DocumentID string `json:"document_id"`

	// Title is the human-readable source title.
	Title string `json:"title,omitempty"`

	// Excerpt is the retrieved passage, if the backend includes it.
	Excerpt string `json:"excerpt,omitempty"`

	// Score is the retrieval relevance score.
	Score float64 `json:"score,omitempty"`
}

// Message represents a single message in a conversation.
type Message struct {
	// ID is the unique message identifier.
	ID string `json:"id"`

	// Role indicates who sent the message.
	Role Role `json:"role"`

	// Content is the text content of the message.
	Content string `json:"content"`

	// Sources are the retrieval citations. Only set on assistant messages.
	Sources []Source `json:"sources,omitempty"`

	// CreatedAt is when the message was created.
	CreatedAt time.Time `json:"created_at"`
}

// IsValid validates that the message has appropriate fields set for its role.
func (m Message) IsValid() bool {
	if !m.Role.IsValid() || m.Content == "" {
		return false
	}
	// Only assistant messages carry sources.
	if len(m.Sources) > 0 && m.Role != RoleAssistant {
		return false
	}
	return true
}

// Conversation accumulates the multi-turn message history of one chat.
type Conversation struct {
	// ID is the unique conversation identifier.
	ID string `json:"id"`

	// Messages is the ordered message history.
	Messages []Message `json:"messages"`

	// CreatedAt is when the conversation started.
	CreatedAt time.Time `json:"created_at"`
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
}

// Append adds a message to the history, generating an ID and timestamp if
// the message has none, and returns the stored message.
func (c *Conversation) Append(role Role, content string, sources ...Source) Message {
	msg := Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Sources:   sources,
		CreatedAt: time.Now(),
	}
	c.Messages = append(c.Messages, msg)
	return msg
}

// LastAssistantMessage returns the most recent assistant message, if any.
func (c *Conversation) LastAssistantMessage() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}
