package v1

import (
	"github.com/gin-gonic/gin"

	messaginghttp "github.com/adityaspaudel/MeroSanjal/internal/pkg/messaging/presentation/http"
	notificationhttp "github.com/adityaspaudel/MeroSanjal/internal/pkg/notification/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, messaging messaginghttp.Deps, notifications notificationhttp.Deps) {
	v1 := r.Group("/api/v1")
	messaginghttp.RegisterRoutes(v1, messaging)
	notificationhttp.RegisterRoutes(v1, notifications)
}
