package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/usecase"
)

// MarkNotificationReadController acknowledges a single notification.
type MarkNotificationReadController struct {
	UC *usecase.MarkNotificationReadUseCase
}

func NewMarkNotificationReadController(uc *usecase.MarkNotificationReadUseCase) *MarkNotificationReadController {
	return &MarkNotificationReadController{UC: uc}
}

func (h *MarkNotificationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		notificationID := c.Param("notificationId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Execute(ctx, userID, notificationID)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, usecase.ErrValidation):
				status = http.StatusBadRequest
			case errors.Is(err, usecase.ErrNotFound):
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
