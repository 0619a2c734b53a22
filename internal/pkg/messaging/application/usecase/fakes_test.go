package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	messaging "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/persistence/repository/port"
	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
	notifport "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/persistence/repository/port"
	userdir "github.com/adityaspaudel/MeroSanjal/internal/repository/port"
)

// memConversationRepo is an in-memory ConversationRepository keyed by the
// canonical pair.
type memConversationRepo struct {
	mu       sync.Mutex
	convs    map[string]*messaging.Conversation
	messages map[string][]messaging.Message // by conversation id
	nextID   int

	failFind   bool
	failAppend bool
}

var _ repository.ConversationRepository = (*memConversationRepo)(nil)

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{
		convs:    make(map[string]*messaging.Conversation),
		messages: make(map[string][]messaging.Message),
	}
}

func pairKey(a, b string) string {
	ca, cb := messaging.CanonicalPair(a, b)
	return ca + "|" + cb
}

func (m *memConversationRepo) FindOrCreate(ctx context.Context, userA, userB string) (*messaging.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFind {
		return nil, fmt.Errorf("boom")
	}
	key := pairKey(userA, userB)
	if c, ok := m.convs[key]; ok {
		cp := *c
		return &cp, nil
	}
	a, b := messaging.CanonicalPair(userA, userB)
	m.nextID++
	c := &messaging.Conversation{
		ID:           fmt.Sprintf("c-%d", m.nextID),
		ParticipantA: a,
		ParticipantB: b,
		CreatedAt:    time.Now().UTC(),
	}
	m.convs[key] = c
	cp := *c
	return &cp, nil
}

func (m *memConversationRepo) AppendMessage(ctx context.Context, msg messaging.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAppend {
		return "", fmt.Errorf("boom")
	}
	m.nextID++
	msg.ID = fmt.Sprintf("m-%d", m.nextID)
	m.messages[msg.ConversationID] = append(m.messages[msg.ConversationID], msg)
	return msg.ID, nil
}

func (m *memConversationRepo) ListMessages(ctx context.Context, userA, userB string) ([]messaging.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.convs[pairKey(userA, userB)]
	if !ok {
		return []messaging.Message{}, nil
	}
	out := make([]messaging.Message, len(m.messages[c.ID]))
	copy(out, m.messages[c.ID])
	return out, nil
}

func (m *memConversationRepo) totalMessages() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	for _, msgs := range m.messages {
		n += len(msgs)
	}
	return n
}

// memNotificationRepo covers the subset of NotificationRepository the send
// path exercises.
type memNotificationRepo struct {
	mu     sync.Mutex
	items  []notification.Notification
	nextID int

	failCreate bool
}

var _ notifport.NotificationRepository = (*memNotificationRepo)(nil)

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
	return notifport.ErrNotFound
}

func (m *memNotificationRepo) CountUnread(ctx context.Context, recipientID string, category notification.Category) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

// staticUserDirectory resolves usernames from a fixed map.
type staticUserDirectory map[string]string

var _ userdir.UserDirectory = (staticUserDirectory)(nil)

func (d staticUserDirectory) FindUsername(ctx context.Context, userID string) (string, error) {
	if name, ok := d[userID]; ok {
		return name, nil
	}
	return "", userdir.ErrUserNotFound
}
