package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adityaspaudel/MeroSanjal/internal/infrastructure/realtime"
	messaging "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/domain"
	repository "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/persistence/repository/port"
	notifusecase "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/usecase"
	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
	userdir "github.com/adityaspaudel/MeroSanjal/internal/repository/port"
)

// previewRuneLimit bounds the notification preview derived from the text.
const previewRuneLimit = 30

// SendMessageInput carries the data needed to deliver a direct message.
type SendMessageInput struct {
	SenderID   string
	ReceiverID string
	Text       string
}

// SendMessageUseCase is the delivery service. The conversation append is
// the durability point: if it fails nothing else happens. The notification
// record is secondary (logged and skipped on failure, the send still
// succeeds) and the realtime emits are fire-and-forget.
type SendMessageUseCase struct {
	Convs  repository.ConversationRepository
	Notify *notifusecase.CreateNotificationUseCase
	Users  userdir.UserDirectory // optional, enriches the preview
	Hub    realtime.Broadcaster  // optional
}

func NewSendMessageUseCase(convs repository.ConversationRepository, notify *notifusecase.CreateNotificationUseCase, users userdir.UserDirectory, hub realtime.Broadcaster) *SendMessageUseCase {
	return &SendMessageUseCase{Convs: convs, Notify: notify, Users: users, Hub: hub}
}

// messageEvent is the wire shape of a pushed message.
type messageEvent struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	ReceiverID     string    `json:"receiver_id"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*messaging.Message, error) {
	if in.SenderID == "" || in.ReceiverID == "" {
		return nil, fmt.Errorf("%w: sender and receiver are required", ErrValidation)
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: %v", ErrValidation, messaging.ErrEmptyText)
	}

	conv, err := uc.Convs.FindOrCreate(ctx, in.SenderID, in.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msg, err := messaging.NewMessage(conv, in.SenderID, in.Text, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := uc.Convs.AppendMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id

	uc.createMessageNotification(ctx, in, msg)
	uc.emitNewMessage(in, msg)

	return &msg, nil
}

// createMessageNotification records the durable notification for the
// receiver. Failure here never fails the send: the message is already
// persisted and delivery is the primary guarantee.
func (uc *SendMessageUseCase) createMessageNotification(ctx context.Context, in SendMessageInput, msg messaging.Message) {
	if uc.Notify == nil {
		return
	}
	preview := messagePreview(msg.Text)
	if uc.Users != nil {
		if name, err := uc.Users.FindUsername(ctx, in.SenderID); err == nil && name != "" {
			preview = name + ": " + preview
		}
	}
	_, err := uc.Notify.Execute(ctx, notifusecase.CreateNotificationInput{
		RecipientID: in.ReceiverID,
		SenderID:    in.SenderID,
		Category:    notification.CategoryMessage,
		Message:     preview,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("sender_id", in.SenderID).
			Str("receiver_id", in.ReceiverID).
			Msg("message stored but notification creation failed")
	}
}

// emitNewMessage echoes the persisted message to both participants' rooms
// so the sender's other tabs and the receiver's live view update without a
// re-fetch. A self-message gets a single emit to avoid duplicates.
func (uc *SendMessageUseCase) emitNewMessage(in SendMessageInput, msg messaging.Message) {
	if uc.Hub == nil {
		return
	}
	event := messageEvent{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		ReceiverID:     in.ReceiverID,
		Text:           msg.Text,
		CreatedAt:      msg.CreatedAt,
	}
	uc.Hub.EmitToUser(in.SenderID, realtime.EventNewMessage, event)
	if in.ReceiverID != in.SenderID {
		uc.Hub.EmitToUser(in.ReceiverID, realtime.EventNewMessage, event)
	}
}

// messagePreview truncates the text the way the notification feed shows it.
func messagePreview(text string) string {
	r := []rune(text)
	if len(r) <= previewRuneLimit {
		return text
	}
	return string(r[:previewRuneLimit]) + "..."
}
