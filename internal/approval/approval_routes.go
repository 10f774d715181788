package approval

import (
	"rh-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	approvals := r.Group("/rental-approvals")
	approvals.Use(middleware.AuthMiddleware())
	{
		approvals.GET("", handler.GetAll)
		approvals.GET("/stats", handler.Stats)
		approvals.GET("/:id", handler.GetById)
		approvals.POST("/:id/approve", handler.Approve)
		approvals.POST("/:id/reject", handler.Reject)
	}
}
