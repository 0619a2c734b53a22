package notification

import (
	"errors"
	"time"
)

// Category partitions notifications for the unread split: "message" feeds
// the chat badge, everything else counts as general.
type Category string

const (
	CategoryLike    Category = "like"
	CategoryComment Category = "comment"
	CategoryMessage Category = "message"
	CategoryFollow  Category = "follow"
)

var (
	ErrMissingRecipient = errors.New("notification: recipient is required")
	ErrMissingSender    = errors.New("notification: sender is required")
	ErrInvalidCategory  = errors.New("notification: invalid category")
)

// Valid reports whether the category is one of the known kinds.
func (c Category) Valid() bool {
	switch c {
	case CategoryLike, CategoryComment, CategoryMessage, CategoryFollow:
		return true
	}
	return false
}

// Notification is a durable, per-recipient record that an event occurred.
// IsRead only ever transitions false -> true; records are never deleted.
type Notification struct {
	ID            string    `db:"id"`
	RecipientID   string    `db:"recipient_id"`
	SenderID      string    `db:"sender_id"`
	Category      Category  `db:"category"`
	RelatedEntity string    `db:"related_entity"` // e.g. post id; empty if none
	Message       string    `db:"message"`
	IsRead        bool      `db:"is_read"`
	CreatedAt     time.Time `db:"created_at"`
}

// New validates and normalizes a notification record for persistence.
func New(recipientID, senderID string, category Category, message, relatedEntity string, now time.Time) (Notification, error) {
	if recipientID == "" {
		return Notification{}, ErrMissingRecipient
	}
	if senderID == "" {
		return Notification{}, ErrMissingSender
	}
	if !category.Valid() {
		return Notification{}, ErrInvalidCategory
	}
	if now.IsZero() {
		now = time.Now()
	}
	return Notification{
		RecipientID:   recipientID,
		SenderID:      senderID,
		Category:      category,
		RelatedEntity: relatedEntity,
		Message:       message,
		IsRead:        false,
		CreatedAt:     now.UTC(),
	}, nil
}

// UnreadCounts is the derived unread projection for one recipient,
// partitioned into the general and message buckets.
type UnreadCounts struct {
	General int64 `json:"general"`
	Message int64 `json:"message"`
}

// Total is the combined unread count across both buckets.
func (u UnreadCounts) Total() int64 { return u.General + u.Message }
