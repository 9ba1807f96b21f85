package domain

import "time"

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation. Messages are never edited after
// they are appended to a transcript.
type Message struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage stamps a message with the current UTC time.
func NewMessage(role Role, text string) Message {
	return Message{Role: role, Text: text, CreatedAt: time.Now().UTC()}
}
