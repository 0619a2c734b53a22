package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	cacheport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/cache/port"
	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
)

// memNotificationRepo is an in-memory NotificationRepository. All mutations
// run under one lock so the conditional-update semantics of the real
// adapters hold here too.
type memNotificationRepo struct {
	mu     sync.Mutex
	items  []notification.Notification
	nextID int

	failCreate bool
	failCount  bool
}

var _ repository.NotificationRepository = (*memNotificationRepo)(nil)

func (m *memNotificationRepo) Create(ctx context.Context, n notification.Notification) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return "", fmt.Errorf("boom")
	}
	m.nextID++
	n.ID = fmt.Sprintf("n-%d", m.nextID)
	m.items = append(m.items, n)
	return n.ID, nil
}

func (m *memNotificationRepo) ListForUser(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification.Notification, 0)
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].RecipientID == recipientID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memNotificationRepo) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == notificationID && m.items[i].RecipientID == recipientID {
			m.items[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memNotificationRepo) CountUnread(ctx context.Context, recipientID string, category notification.Category) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCount {
		return 0, fmt.Errorf("boom")
	}
	var count int64
	for _, n := range m.items {
		if n.RecipientID != recipientID || n.IsRead {
			continue
		}
		if category != "" && n.Category != category {
			continue
		}
		count++
	}
	return count, nil
}

func (m *memNotificationRepo) MarkConversationRead(ctx context.Context, recipientID, senderID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var updated int64
	for i := range m.items {
		n := &m.items[i]
		if n.RecipientID == recipientID && n.SenderID == senderID && n.Category == notification.CategoryMessage && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

// seed inserts an unread notification directly, bypassing the use case.
func (m *memNotificationRepo) seed(recipient, sender string, category notification.Category) string {
	id, _ := m.Create(context.Background(), notification.Notification{
		RecipientID: recipient,
		SenderID:    sender,
		Category:    category,
		Message:     "seeded",
		CreatedAt:   time.Now().UTC(),
	})
	return id
}

// emittedEvent captures one Broadcaster push.
type emittedEvent struct {
	UserID  string
	Event   string
	Payload any
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []emittedEvent
}

func (f *fakeBroadcaster) EmitToUser(userID string, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, emittedEvent{UserID: userID, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) eventsFor(userID, event string) []emittedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]emittedEvent, 0)
	for _, e := range f.events {
		if e.UserID == userID && e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// fakeCache is a TTL-ignoring in-memory cache.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

var _ cacheport.Cache = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }
func (f *fakeCache) Close() error                   { return nil }
