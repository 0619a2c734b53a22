package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	qport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/queue/port"
	"github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/task"
)

// EnqueueNotificationController is the entry point for feed-side events
// (likes, comments, follows). Instead of writing in-process it enqueues a
// background task, so feed traffic spikes never contend with the send path.
type EnqueueNotificationController struct {
	Q qport.Client
}

func NewEnqueueNotificationController(client qport.Client) *EnqueueNotificationController {
	return &EnqueueNotificationController{Q: client}
}

type enqueueNotificationRequest struct {
	Sender        string `json:"sender" binding:"required"`
	Category      string `json:"category" binding:"required"`
	Message       string `json:"message"`
	RelatedEntity string `json:"related_entity"`
}

func (h *EnqueueNotificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		recipientID := c.Param("userId")
		if recipientID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
			return
		}

		var req enqueueNotificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		payload := task.CreateNotificationTaskPayload{
			RecipientID:   recipientID,
			SenderID:      req.Sender,
			Category:      req.Category,
			Message:       req.Message,
			RelatedEntity: req.RelatedEntity,
		}
		b, err := json.Marshal(payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		opts := qport.EnqueueOption{Queue: "notifications", MaxRetry: 10}
		id, err := h.Q.Enqueue(ctx, qport.Task{Type: task.CreateNotificationTaskType, Payload: b}, opts)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue notification"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":    "queued",
			"task_id":   id,
			"recipient": recipientID,
		})
	}
}
