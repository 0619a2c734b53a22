package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/application/usecase"
)

// SendMessageController handles the send-message endpoint only (one
// controller per endpoint).
type SendMessageController struct {
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(uc *usecase.SendMessageUseCase) *SendMessageController {
	return &SendMessageController{UC: uc}
}

// sendMessageRequest is the DTO for the HTTP request body
type sendMessageRequest struct {
	Sender   string `json:"sender" binding:"required"`
	Receiver string `json:"receiver" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

// Handle returns a gin handler that delivers a direct message.
func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sender, receiver and text are required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			SenderID:   req.Sender,
			ReceiverID: req.Receiver,
			Text:       req.Text,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrValidation) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data": gin.H{
				"id":              msg.ID,
				"conversation_id": msg.ConversationID,
				"sender":          msg.SenderID,
				"text":            msg.Text,
				"created_at":      msg.CreatedAt,
			},
		})
	}
}
