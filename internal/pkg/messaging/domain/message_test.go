package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	conv := &Conversation{ID: "c1", ParticipantA: "alice", ParticipantB: "bob"}
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	t.Run("valid message", func(t *testing.T) {
		msg, err := NewMessage(conv, "alice", "  hello bob  ", now)
		require.NoError(t, err)
		assert.Equal(t, "c1", msg.ConversationID)
		assert.Equal(t, "alice", msg.SenderID)
		assert.Equal(t, "hello bob", msg.Text, "text is trimmed")
		assert.Equal(t, now, msg.CreatedAt)
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := NewMessage(conv, "alice", "", now)
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		_, err := NewMessage(conv, "alice", "   \t\n ", now)
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("sender not a participant", func(t *testing.T) {
		_, err := NewMessage(conv, "mallory", "hi", now)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("zero now falls back to wall clock", func(t *testing.T) {
		msg, err := NewMessage(conv, "bob", "hi", time.Time{})
		require.NoError(t, err)
		assert.False(t, msg.CreatedAt.IsZero())
	})
}
