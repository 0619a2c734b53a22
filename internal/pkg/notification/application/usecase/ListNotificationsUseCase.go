package usecase

import (
	"context"
	"fmt"

	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
)

// ListNotificationsUseCase returns the full notification history for one
// recipient, newest first.
type ListNotificationsUseCase struct {
	Repo repository.NotificationRepository
}

func NewListNotificationsUseCase(repo repository.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Repo: repo}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("%w: recipient id is required", ErrValidation)
	}
	items, err := uc.Repo.ListForUser(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return items, nil
}
