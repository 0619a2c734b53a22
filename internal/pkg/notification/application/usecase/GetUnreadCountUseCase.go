package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	cacheport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/cache/port"
	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
)

// GetUnreadCountUseCase serves the unread projection for one user. A redis
// snapshot fronts the store; every mutation path rewrites or drops it, and
// a miss (or a broken entry) falls through to a live recount.
type GetUnreadCountUseCase struct {
	Repo  repository.NotificationRepository
	Cache cacheport.Cache // optional
}

func NewGetUnreadCountUseCase(repo repository.NotificationRepository, cache cacheport.Cache) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{Repo: repo, Cache: cache}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, userID string) (notification.UnreadCounts, error) {
	if userID == "" {
		return notification.UnreadCounts{}, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	// Miss, transport failure or a broken entry all fall through to the
	// live recount below.
	if uc.Cache != nil {
		if raw, err := uc.Cache.Get(ctx, unreadCacheKey(userID)); err == nil {
			var counts notification.UnreadCounts
			if json.Unmarshal([]byte(raw), &counts) == nil {
				return counts, nil
			}
		}
	}

	counts, err := liveCounts(ctx, uc.Repo, userID)
	if err != nil {
		return notification.UnreadCounts{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if uc.Cache != nil {
		if b, err := json.Marshal(counts); err == nil {
			_ = uc.Cache.Set(ctx, unreadCacheKey(userID), string(b), unreadCacheTTL)
		}
	}
	return counts, nil
}
