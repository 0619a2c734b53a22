package usecase

import (
	"context"
	"fmt"
	"time"

	cacheport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/cache/port"
	"github.com/adityaspaudel/MeroSanjal/internal/infrastructure/realtime"
	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
)

// CreateNotificationInput carries the data for a new notification record.
type CreateNotificationInput struct {
	RecipientID   string
	SenderID      string
	Category      notification.Category
	Message       string
	RelatedEntity string
}

// CreateNotificationUseCase persists a notification and fans out the
// realtime side effects: newNotification to the recipient plus a refreshed
// unread snapshot. The store write is the only hard dependency; emits are
// fire-and-forget.
type CreateNotificationUseCase struct {
	Repo  repository.NotificationRepository
	Cache cacheport.Cache      // optional
	Hub   realtime.Broadcaster // optional
}

func NewCreateNotificationUseCase(repo repository.NotificationRepository, cache cacheport.Cache, hub realtime.Broadcaster) *CreateNotificationUseCase {
	return &CreateNotificationUseCase{Repo: repo, Cache: cache, Hub: hub}
}

// notificationEvent is the wire shape of a pushed notification.
type notificationEvent struct {
	ID            string    `json:"id"`
	RecipientID   string    `json:"recipient_id"`
	SenderID      string    `json:"sender_id"`
	Category      string    `json:"category"`
	RelatedEntity string    `json:"related_entity,omitempty"`
	Message       string    `json:"message"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

func (uc *CreateNotificationUseCase) Execute(ctx context.Context, in CreateNotificationInput) (*notification.Notification, error) {
	n, err := notification.New(in.RecipientID, in.SenderID, in.Category, in.Message, in.RelatedEntity, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := uc.Repo.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	n.ID = id

	if uc.Hub != nil {
		uc.Hub.EmitToUser(n.RecipientID, realtime.EventNewNotification, notificationEvent{
			ID:            n.ID,
			RecipientID:   n.RecipientID,
			SenderID:      n.SenderID,
			Category:      string(n.Category),
			RelatedEntity: n.RelatedEntity,
			Message:       n.Message,
			IsRead:        n.IsRead,
			CreatedAt:     n.CreatedAt,
		})
	}
	refreshAndBroadcastCounts(ctx, uc.Repo, uc.Cache, uc.Hub, n.RecipientID)

	return &n, nil
}
