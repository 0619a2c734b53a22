package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/application/usecase"
)

// GetMessagesController fetches the ordered history for a participant pair.
type GetMessagesController struct {
	UC *usecase.GetMessagesUseCase
}

func NewGetMessagesController(uc *usecase.GetMessagesUseCase) *GetMessagesController {
	return &GetMessagesController{UC: uc}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		sender := c.Param("sender")
		receiver := c.Param("receiver")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.GetMessagesInput{UserA: sender, UserB: receiver})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrValidation) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"success": false, "error": err.Error()})
			return
		}

		// A pair that never talked gets an empty array, not a 404.
		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, gin.H{
				"id":              m.ID,
				"conversation_id": m.ConversationID,
				"sender":          m.SenderID,
				"text":            m.Text,
				"created_at":      m.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "messages": out})
	}
}
