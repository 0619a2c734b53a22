package messaging

import (
	"errors"
	"strings"
	"time"
)

// Domain-level errors for messaging behaviors
var (
	ErrEmptyText      = errors.New("messaging: empty message text")
	ErrNotParticipant = errors.New("messaging: sender is not a participant in the conversation")
)

// Message is an immutable log entry in a conversation. Once appended it is
// never edited or deleted; insertion order is chronological order.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Text           string    `db:"text"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and normalizes a message for the given conversation.
//
// Rules:
//   - text must be non-empty after trimming whitespace
//   - the sender must be one of the two participants
//   - CreatedAt is server-assigned; a zero now falls back to time.Now
func NewMessage(conv *Conversation, senderID, text string, now time.Time) (Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Message{}, ErrEmptyText
	}
	if !conv.HasParticipant(senderID) {
		return Message{}, ErrNotParticipant
	}
	if now.IsZero() {
		now = time.Now()
	}
	return Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Text:           trimmed,
		CreatedAt:      now.UTC(),
	}, nil
}
