package repository

import (
	"context"

	messaging "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/domain"
)

// ConversationRepository defines persistence operations for the messaging
// domain. Implementations must canonicalize the participant pair so both
// argument orders address the same conversation, and must be safe under
// concurrent FindOrCreate calls for the same pair.
type ConversationRepository interface {
	// FindOrCreate returns the unique conversation for the unordered pair,
	// creating an empty one if none exists yet.
	FindOrCreate(ctx context.Context, userA, userB string) (*messaging.Conversation, error)

	// AppendMessage persists the message and returns the store-assigned id.
	AppendMessage(ctx context.Context, m messaging.Message) (string, error)

	// ListMessages returns the full ordered history for the pair. A missing
	// conversation yields an empty slice, not an error.
	ListMessages(ctx context.Context, userA, userB string) ([]messaging.Message, error)
}
