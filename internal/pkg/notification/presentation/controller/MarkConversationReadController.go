package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/usecase"
)

// MarkConversationReadController acknowledges every unread message
// notification from one peer in a single call.
type MarkConversationReadController struct {
	UC *usecase.MarkConversationReadUseCase
}

func NewMarkConversationReadController(uc *usecase.MarkConversationReadUseCase) *MarkConversationReadController {
	return &MarkConversationReadController{UC: uc}
}

func (h *MarkConversationReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		peerID := c.Param("peerId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		updated, err := h.UC.Execute(ctx, userID, peerID)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, usecase.ErrValidation) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"success": false, "error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
	}
}
