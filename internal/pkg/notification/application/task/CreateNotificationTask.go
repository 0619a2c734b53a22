package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	qport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/queue/port"
	"github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/usecase"
	notification "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/domain"
)

// CreateNotificationTaskType is the queue task name for notification
// creation. The feed side (likes, comments, follows) enqueues these instead
// of calling the core in-process.
const CreateNotificationTaskType = "notification:create"

// CreateNotificationTaskPayload is the JSON payload transported via the
// queue. Kept decoupled from domain types to avoid tight coupling with
// JSON tags.
type CreateNotificationTaskPayload struct {
	RecipientID   string `json:"recipientId"`
	SenderID      string `json:"senderId"`
	Category      string `json:"category"`
	Message       string `json:"message"`
	RelatedEntity string `json:"relatedEntity,omitempty"`
}

// RegisterCreateNotificationTask binds the task handler to the provided
// server. Validation failures are permanent and must not retry; anything
// else is surfaced so the adapter's retry policy applies.
func RegisterCreateNotificationTask(srv qport.Server, uc *usecase.CreateNotificationUseCase) {
	srv.Register(CreateNotificationTaskType, func(ctx context.Context, t qport.Task) error {
		var p CreateNotificationTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: retrying cannot help
			log.Warn().Err(err).Str("task", t.Type).Msg("dropping malformed notification task")
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := uc.Execute(ctx, usecase.CreateNotificationInput{
			RecipientID:   p.RecipientID,
			SenderID:      p.SenderID,
			Category:      notification.Category(p.Category),
			Message:       p.Message,
			RelatedEntity: p.RelatedEntity,
		})
		if errors.Is(err, usecase.ErrValidation) {
			return nil
		}
		return err
	})
}
