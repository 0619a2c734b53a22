package usecase

import (
	"context"
	"fmt"

	cacheport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/cache/port"
	"github.com/adityaspaudel/MeroSanjal/internal/infrastructure/realtime"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
)

// MarkConversationReadUseCase acknowledges every unread message
// notification from one peer in a single conditional bulk update, then
// broadcasts the new counts and a messagesRead marker so all of the user's
// live connections (sidebar badge, open chat) converge without re-polling.
//
// The bulk update only transitions rows still unread at update time, so
// calling this twice concurrently can neither double-count nor leave a
// partial subset unread.
type MarkConversationReadUseCase struct {
	Repo  repository.NotificationRepository
	Cache cacheport.Cache      // optional
	Hub   realtime.Broadcaster // optional
}

func NewMarkConversationReadUseCase(repo repository.NotificationRepository, cache cacheport.Cache, hub realtime.Broadcaster) *MarkConversationReadUseCase {
	return &MarkConversationReadUseCase{Repo: repo, Cache: cache, Hub: hub}
}

type messagesReadEvent struct {
	PeerID string `json:"peer_id"`
}

// Execute returns how many notifications transitioned to read.
func (uc *MarkConversationReadUseCase) Execute(ctx context.Context, userID, peerID string) (int64, error) {
	if userID == "" || peerID == "" {
		return 0, fmt.Errorf("%w: user id and peer id are required", ErrValidation)
	}

	updated, err := uc.Repo.MarkConversationRead(ctx, userID, peerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	refreshAndBroadcastCounts(ctx, uc.Repo, uc.Cache, uc.Hub, userID)
	if uc.Hub != nil {
		uc.Hub.EmitToUser(userID, realtime.EventMessagesRead, messagesReadEvent{PeerID: peerID})
	}
	return updated, nil
}
