package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	cacheport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/cache/port"
	"github.com/adityaspaudel/MeroSanjal/internal/infrastructure/realtime"
	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
)

// Cached unread snapshots are short-lived; any mutation refreshes them and
// a live recount always wins on a miss.
const unreadCacheTTL = 30 * time.Second

func unreadCacheKey(userID string) string { return "unread:" + userID }

// liveCounts recomputes the unread projection from the store, split into
// the general and message buckets.
func liveCounts(ctx context.Context, repo repository.NotificationRepository, userID string) (notification.UnreadCounts, error) {
	total, err := repo.CountUnread(ctx, userID, "")
	if err != nil {
		return notification.UnreadCounts{}, err
	}
	messages, err := repo.CountUnread(ctx, userID, notification.CategoryMessage)
	if err != nil {
		return notification.UnreadCounts{}, err
	}
	return notification.UnreadCounts{General: total - messages, Message: messages}, nil
}

// refreshAndBroadcastCounts recomputes the unread projection after a
// read-state change, refreshes the cache snapshot and pushes
// updateUnreadCount to every live connection of the user. All failures
// here are best-effort: the durable mutation already happened.
func refreshAndBroadcastCounts(ctx context.Context, repo repository.NotificationRepository, cache cacheport.Cache, hub realtime.Broadcaster, userID string) {
	counts, err := liveCounts(ctx, repo, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("unread recount failed; dropping stale snapshot")
		if cache != nil {
			_, _ = cache.Del(ctx, unreadCacheKey(userID))
		}
		return
	}
	if cache != nil {
		if b, err := json.Marshal(counts); err == nil {
			_ = cache.Set(ctx, unreadCacheKey(userID), string(b), unreadCacheTTL)
		}
	}
	if hub != nil {
		hub.EmitToUser(userID, realtime.EventUpdateUnreadCount, counts)
	}
}
