package rental

import (
	"rh-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	batchHandler *BatchHandler,
	rdb *redis.Client,
) {
	rentals := r.Group("/equipment-rentals")
	rentals.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		rentals.GET("", handler.GetAll)
		rentals.GET("/stats", handler.Stats)
		rentals.GET("/calculations", handler.Calculations)
		rentals.GET("/report", handler.Report)
		rentals.GET("/:id", handler.GetById)
		rentals.POST("", handler.Create)
		rentals.PUT("/:id", handler.Update)
		rentals.DELETE("/:id", handler.Delete)

		// Batch runs are retried by clients; the idempotency key keeps a
		// double submit from processing the month twice.
		rentals.POST("/process-batch",
			middleware.RateLimitByUser(rate.Limit(1), 2),
			middleware.Idempotency(rdb),
			batchHandler.ProcessPeriod,
		)
	}

	payments := r.Group("/rental-payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.GET("", handler.GetPayments)
		payments.POST("/:id/pay", handler.MarkPaymentPaid)
	}
}
