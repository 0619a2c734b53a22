package http

import (
	"github.com/gin-gonic/gin"

	"github.com/adityaspaudel/MeroSanjal/internal/infrastructure/realtime"
	"github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/application/usecase"
	"github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/presentation/controller"
)

// Deps bundles what the messaging endpoints need.
type Deps struct {
	SendMessage *usecase.SendMessageUseCase
	GetMessages *usecase.GetMessagesUseCase
	Presence    *realtime.Presence
}

// RegisterRoutes registers messaging HTTP endpoints under the given router
// group. It constructs per-endpoint controllers and binds them directly to
// routes.
func RegisterRoutes(g *gin.RouterGroup, deps Deps) {
	sendCtl := controller.NewSendMessageController(deps.SendMessage)
	getCtl := controller.NewGetMessagesController(deps.GetMessages)
	socketCtl := controller.NewSocketController(deps.Presence)

	// POST /api/v1/messages -> send a direct message
	g.POST("/messages", sendCtl.Handle())

	// GET /api/v1/messages/:sender/:receiver -> ordered history for the pair
	g.GET("/messages/:sender/:receiver", getCtl.Handle())

	// GET /api/v1/ws -> websocket endpoint for realtime pushes
	g.GET("/ws", socketCtl.Handle())
}
