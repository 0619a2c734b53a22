package usecase

import (
	"context"
	"errors"
	"fmt"

	cacheport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/cache/port"
	"github.com/adityaspaudel/MeroSanjal/internal/infrastructure/realtime"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
)

// MarkNotificationReadUseCase acknowledges a single notification and pushes
// the refreshed unread counts to the recipient's live connections.
type MarkNotificationReadUseCase struct {
	Repo  repository.NotificationRepository
	Cache cacheport.Cache      // optional
	Hub   realtime.Broadcaster // optional
}

func NewMarkNotificationReadUseCase(repo repository.NotificationRepository, cache cacheport.Cache, hub realtime.Broadcaster) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{Repo: repo, Cache: cache, Hub: hub}
}

func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, recipientID, notificationID string) error {
	if recipientID == "" || notificationID == "" {
		return fmt.Errorf("%w: recipient id and notification id are required", ErrValidation)
	}

	if err := uc.Repo.MarkRead(ctx, recipientID, notificationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: notification %s", ErrNotFound, notificationID)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	refreshAndBroadcastCounts(ctx, uc.Repo, uc.Cache, uc.Hub, recipientID)
	return nil
}
