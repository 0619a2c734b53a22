package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/usecase"
)

// UnreadCountController serves the unread projection for one user.
type UnreadCountController struct {
	UC *usecase.GetUnreadCountUseCase
}

func NewUnreadCountController(uc *usecase.GetUnreadCountUseCase) *UnreadCountController {
	return &UnreadCountController{UC: uc}
}

func (h *UnreadCountController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		counts, err := h.UC.Execute(ctx, userID)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrValidation) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"general": counts.General,
			"message": counts.Message,
			"count":   counts.Total(),
		})
	}
}
