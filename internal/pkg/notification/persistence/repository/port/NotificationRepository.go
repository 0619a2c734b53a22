package repository

import (
	"context"
	"errors"

	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
)

// ErrNotFound is returned when a notification does not exist or does not
// belong to the given recipient.
var ErrNotFound = errors.New("notification repository: not found")

// NotificationRepository defines persistence operations for per-recipient
// notification records. Read-state mutations must be conditional updates
// executed store-side, never read-modify-write from the application layer.
type NotificationRepository interface {
	// Create appends a new unread notification and returns the assigned id.
	Create(ctx context.Context, n notification.Notification) (string, error)

	// ListForUser returns every notification for the recipient, newest first.
	ListForUser(ctx context.Context, recipientID string) ([]notification.Notification, error)

	// MarkRead flips IsRead to true. ErrNotFound if the notification does not
	// belong to the recipient; marking an already-read record is a no-op
	// success.
	MarkRead(ctx context.Context, recipientID, notificationID string) error

	// CountUnread returns a live unread count, optionally restricted to one
	// category (empty category means all).
	CountUnread(ctx context.Context, recipientID string, category notification.Category) (int64, error)

	// MarkConversationRead marks every still-unread message notification from
	// senderID to recipientID as read in one conditional bulk update and
	// returns how many records transitioned.
	MarkConversationRead(ctx context.Context, recipientID, senderID string) (int64, error)
}
