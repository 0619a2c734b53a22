package http

import (
	"github.com/gin-gonic/gin"

	qport "github.com/adityaspaudel/MeroSanjal/internal/infrastructure/queue/port"
	"github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/application/usecase"
	"github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/presentation/controller"
)

// Deps bundles what the notification endpoints need. Queue may be nil when
// no broker is configured; the enqueue endpoint is then not mounted.
type Deps struct {
	List         *usecase.ListNotificationsUseCase
	MarkRead     *usecase.MarkNotificationReadUseCase
	UnreadCount  *usecase.GetUnreadCountUseCase
	MarkConvRead *usecase.MarkConversationReadUseCase
	Queue        qport.Client
}

// RegisterRoutes registers notification HTTP endpoints under the given
// router group.
func RegisterRoutes(g *gin.RouterGroup, deps Deps) {
	listCtl := controller.NewListNotificationsController(deps.List)
	markReadCtl := controller.NewMarkNotificationReadController(deps.MarkRead)
	unreadCtl := controller.NewUnreadCountController(deps.UnreadCount)
	convReadCtl := controller.NewMarkConversationReadController(deps.MarkConvRead)

	// GET /api/v1/users/:userId/notifications -> full list for the recipient
	g.GET("/users/:userId/notifications", listCtl.Handle())

	// PUT /api/v1/users/:userId/notifications/:notificationId/read -> ack one
	g.PUT("/users/:userId/notifications/:notificationId/read", markReadCtl.Handle())

	// GET /api/v1/users/:userId/notifications/unread-count -> {general, message}
	g.GET("/users/:userId/notifications/unread-count", unreadCtl.Handle())

	// PUT /api/v1/users/:userId/conversations/:peerId/read -> bulk ack + broadcast
	g.PUT("/users/:userId/conversations/:peerId/read", convReadCtl.Handle())

	if deps.Queue != nil {
		enqueueCtl := controller.NewEnqueueNotificationController(deps.Queue)
		// POST /api/v1/users/:userId/notifications -> queue a feed-side notification
		g.POST("/users/:userId/notifications", enqueueCtl.Handle())
	}
}
