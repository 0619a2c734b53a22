package usecase

import (
	"context"
	"fmt"

	messaging "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/persistence/repository/port"
)

// GetMessagesInput identifies the conversation by its unordered pair.
type GetMessagesInput struct {
	UserA string
	UserB string
}

// GetMessagesUseCase returns the full ordered history for a pair. A pair
// that never talked yields an empty slice, not an error.
type GetMessagesUseCase struct {
	Repo repository.ConversationRepository
}

func NewGetMessagesUseCase(repo repository.ConversationRepository) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo}
}

func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]messaging.Message, error) {
	if in.UserA == "" || in.UserB == "" {
		return nil, fmt.Errorf("%w: both participant ids are required", ErrValidation)
	}
	msgs, err := uc.Repo.ListMessages(ctx, in.UserA, in.UserB)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
