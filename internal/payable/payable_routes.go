package payable

import (
	"rh-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payables := r.Group("/accounts-payable")
	payables.Use(middleware.AuthMiddleware())
	{
		payables.GET("", handler.GetAll)
	}
}
