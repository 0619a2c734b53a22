package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityaspaudel/MeroSanjal/internal/infrastructure/realtime"
	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
)

func TestCreateNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and emits to recipient", func(t *testing.T) {
		repo := &memNotificationRepo{}
		hub := &fakeBroadcaster{}
		uc := NewCreateNotificationUseCase(repo, nil, hub)

		n, err := uc.Execute(ctx, CreateNotificationInput{
			RecipientID: "bob",
			SenderID:    "alice",
			Category:    notification.CategoryLike,
			Message:     "alice liked your post",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, n.ID)
		assert.False(t, n.IsRead)

		assert.Len(t, hub.eventsFor("bob", realtime.EventNewNotification), 1)
		assert.Len(t, hub.eventsFor("bob", realtime.EventUpdateUnreadCount), 1)
		assert.Empty(t, hub.eventsFor("alice", realtime.EventNewNotification))
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		repo := &memNotificationRepo{}
		uc := NewCreateNotificationUseCase(repo, nil, nil)

		_, err := uc.Execute(ctx, CreateNotificationInput{
			RecipientID: "bob",
			SenderID:    "alice",
			Category:    "poke",
		})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, repo.items)
	})

	t.Run("repository failure surfaces as persistence error", func(t *testing.T) {
		repo := &memNotificationRepo{failCreate: true}
		hub := &fakeBroadcaster{}
		uc := NewCreateNotificationUseCase(repo, nil, hub)

		_, err := uc.Execute(ctx, CreateNotificationInput{
			RecipientID: "bob",
			SenderID:    "alice",
			Category:    notification.CategoryComment,
		})
		assert.ErrorIs(t, err, ErrPersistence)
		assert.Empty(t, hub.events)
	})
}

func TestMarkNotificationRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks read and is idempotent", func(t *testing.T) {
		repo := &memNotificationRepo{}
		id := repo.seed("bob", "alice", notification.CategoryLike)
		hub := &fakeBroadcaster{}
		uc := NewMarkNotificationReadUseCase(repo, nil, hub)

		require.NoError(t, uc.Execute(ctx, "bob", id))
		require.NoError(t, uc.Execute(ctx, "bob", id), "second ack succeeds")

		count, err := repo.CountUnread(ctx, "bob", "")
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Len(t, hub.eventsFor("bob", realtime.EventUpdateUnreadCount), 2)
	})

	t.Run("not found for another recipient's notification", func(t *testing.T) {
		repo := &memNotificationRepo{}
		id := repo.seed("bob", "alice", notification.CategoryLike)
		uc := NewMarkNotificationReadUseCase(repo, nil, nil)

		err := uc.Execute(ctx, "mallory", id)
		assert.ErrorIs(t, err, ErrNotFound)

		count, _ := repo.CountUnread(ctx, "bob", "")
		assert.EqualValues(t, 1, count, "bob's notification stays unread")
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		uc := NewMarkNotificationReadUseCase(&memNotificationRepo{}, nil, nil)
		assert.ErrorIs(t, uc.Execute(ctx, "", "n-1"), ErrValidation)
		assert.ErrorIs(t, uc.Execute(ctx, "bob", ""), ErrValidation)
	})
}

func TestGetUnreadCount(t *testing.T) {
	ctx := context.Background()

	t.Run("splits general and message buckets", func(t *testing.T) {
		repo := &memNotificationRepo{}
		repo.seed("bob", "alice", notification.CategoryLike)
		repo.seed("bob", "carol", notification.CategoryComment)
		repo.seed("bob", "alice", notification.CategoryMessage)
		repo.seed("bob", "alice", notification.CategoryMessage)
		repo.seed("carol", "alice", notification.CategoryLike) // other user

		uc := NewGetUnreadCountUseCase(repo, nil)
		counts, err := uc.Execute(ctx, "bob")
		require.NoError(t, err)
		assert.EqualValues(t, 2, counts.General)
		assert.EqualValues(t, 2, counts.Message)
		assert.EqualValues(t, 4, counts.Total())
	})

	t.Run("serves cache snapshot without hitting the store", func(t *testing.T) {
		repo := &memNotificationRepo{}
		repo.seed("bob", "alice", notification.CategoryLike)
		cache := newFakeCache()
		uc := NewGetUnreadCountUseCase(repo, cache)

		first, err := uc.Execute(ctx, "bob")
		require.NoError(t, err)
		assert.EqualValues(t, 1, first.General)

		// A direct store mutation is invisible until the snapshot expires
		// or a mutation path rewrites it.
		repo.seed("bob", "alice", notification.CategoryLike)
		repo.failCount = true

		second, err := uc.Execute(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("mutation refreshes the snapshot", func(t *testing.T) {
		repo := &memNotificationRepo{}
		id := repo.seed("bob", "alice", notification.CategoryLike)
		cache := newFakeCache()

		get := NewGetUnreadCountUseCase(repo, cache)
		_, err := get.Execute(ctx, "bob")
		require.NoError(t, err)

		markRead := NewMarkNotificationReadUseCase(repo, cache, nil)
		require.NoError(t, markRead.Execute(ctx, "bob", id))

		counts, err := get.Execute(ctx, "bob")
		require.NoError(t, err)
		assert.EqualValues(t, 0, counts.Total())
	})

	t.Run("store failure without cache", func(t *testing.T) {
		repo := &memNotificationRepo{failCount: true}
		uc := NewGetUnreadCountUseCase(repo, nil)
		_, err := uc.Execute(ctx, "bob")
		assert.ErrorIs(t, err, ErrPersistence)
	})
}

func TestMarkConversationRead(t *testing.T) {
	ctx := context.Background()

	t.Run("acks only message notifications from the peer", func(t *testing.T) {
		repo := &memNotificationRepo{}
		repo.seed("bob", "alice", notification.CategoryMessage)
		repo.seed("bob", "alice", notification.CategoryMessage)
		repo.seed("bob", "alice", notification.CategoryLike)    // different category
		repo.seed("bob", "carol", notification.CategoryMessage) // different peer
		hub := &fakeBroadcaster{}
		uc := NewMarkConversationReadUseCase(repo, nil, hub)

		updated, err := uc.Execute(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.EqualValues(t, 2, updated)

		msgUnread, _ := repo.CountUnread(ctx, "bob", notification.CategoryMessage)
		assert.EqualValues(t, 1, msgUnread, "carol's message stays unread")

		readEvents := hub.eventsFor("bob", realtime.EventMessagesRead)
		require.Len(t, readEvents, 1)
		assert.Equal(t, messagesReadEvent{PeerID: "alice"}, readEvents[0].Payload)
	})

	t.Run("concurrent acks never double-count", func(t *testing.T) {
		repo := &memNotificationRepo{}
		const seeded = 20
		for i := 0; i < seeded; i++ {
			repo.seed("bob", "alice", notification.CategoryMessage)
		}
		uc := NewMarkConversationReadUseCase(repo, nil, nil)

		results := make([]int64, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				n, err := uc.Execute(ctx, "bob", "alice")
				assert.NoError(t, err)
				results[i] = n
			}(i)
		}
		wg.Wait()

		assert.EqualValues(t, seeded, results[0]+results[1])
		remaining, _ := repo.CountUnread(ctx, "bob", notification.CategoryMessage)
		assert.Zero(t, remaining)
	})

	t.Run("nothing to ack is a zero-count success", func(t *testing.T) {
		uc := NewMarkConversationReadUseCase(&memNotificationRepo{}, nil, nil)
		updated, err := uc.Execute(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.Zero(t, updated)
	})
}

func TestListNotifications(t *testing.T) {
	ctx := context.Background()

	repo := &memNotificationRepo{}
	repo.seed("bob", "alice", notification.CategoryLike)
	repo.seed("bob", "carol", notification.CategoryComment)
	repo.seed("dave", "alice", notification.CategoryLike)
	uc := NewListNotificationsUseCase(repo)

	items, err := uc.Execute(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "carol", items[0].SenderID, "newest first")
	assert.Equal(t, "alice", items[1].SenderID)

	empty, err := uc.Execute(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = uc.Execute(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}
