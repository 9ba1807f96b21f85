package chatbot

import (
	"time"

	"github.com/alexanderramin/ecostats/internal/domain"
)

// ConversationState is the per-session record: an append-only transcript and
// the stage currently shown. It is not safe for concurrent use; callers
// serialize turns per session.
type ConversationState struct {
	ID         string           `json:"id"`
	Transcript []domain.Message `json:"transcript"`
	Stage      domain.Stage     `json:"stage"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// NewConversationState returns an empty, unseeded state.
func NewConversationState(id string) *ConversationState {
	now := time.Now().UTC()
	return &ConversationState{ID: id, CreatedAt: now, UpdatedAt: now}
}

// Initialized reports whether the state has been seeded.
func (s *ConversationState) Initialized() bool {
	return len(s.Transcript) > 0
}

// Initialize seeds the greeting and the root stage once. It reports whether
// it did anything; later calls leave the conversation untouched.
func (s *ConversationState) Initialize() bool {
	if s.Initialized() {
		return false
	}
	s.Stage = domain.StageRoot
	s.AppendMessage(domain.RoleAssistant, Greeting)
	return true
}

// AppendMessage adds one message at the end of the transcript.
func (s *ConversationState) AppendMessage(role domain.Role, text string) domain.Message {
	msg := domain.NewMessage(role, text)
	s.Transcript = append(s.Transcript, msg)
	s.UpdatedAt = msg.CreatedAt
	return msg
}

// SetStage replaces the current stage. Tags are not validated here; the
// router resets unknown ones on the next render.
func (s *ConversationState) SetStage(tag domain.Stage) {
	s.Stage = tag
	s.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy safe to hand out while the original keeps changing.
func (s *ConversationState) Clone() *ConversationState {
	c := *s
	c.Transcript = append([]domain.Message(nil), s.Transcript...)
	return &c
}
