package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/usecase"
)

// ListNotificationsController returns every notification for a recipient.
type ListNotificationsController struct {
	UC *usecase.ListNotificationsUseCase
}

func NewListNotificationsController(uc *usecase.ListNotificationsUseCase) *ListNotificationsController {
	return &ListNotificationsController{UC: uc}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		items, err := h.UC.Execute(ctx, userID)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrValidation) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"success": false, "error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(items))
		for _, n := range items {
			out = append(out, gin.H{
				"id":             n.ID,
				"recipient":      n.RecipientID,
				"sender":         n.SenderID,
				"category":       n.Category,
				"related_entity": n.RelatedEntity,
				"message":        n.Message,
				"is_read":        n.IsRead,
				"created_at":     n.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "notifications": out})
	}
}
