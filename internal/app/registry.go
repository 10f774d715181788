package app

import (
	"database/sql"

	"rh-backoffice/internal/absence"
	"rh-backoffice/internal/approval"
	"rh-backoffice/internal/employee"
	"rh-backoffice/internal/messaging/kafka"
	"rh-backoffice/internal/middleware"
	"rh-backoffice/internal/payable"
	"rh-backoffice/internal/rental"
	"rh-backoffice/internal/schedule"
	"rh-backoffice/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	absenceRepo := absence.NewRepository(gormDB)
	rentalRepo := rental.NewRepository(gormDB)
	paymentRepo := rental.NewPaymentRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	payableRepo := payable.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Calculation pipeline ---
	resolver := schedule.NewResolver(scheduleRepo)
	collector := absence.NewCollector(absenceRepo, resolver)
	calculator := rental.NewCalculatorWithAggregate(
		rentalRepo,
		employeeRepo,
		collector,
		resolver,
		rental.NewPgAggregateSource(gormDB),
	)

	// --- Services ---
	rentalService := rental.NewService(db, rentalRepo, paymentRepo, employeeRepo)
	reportService := rental.NewReportService(calculator, rdb)
	batchService := rental.NewBatchService(
		db,
		calculator,
		paymentRepo,
		approvalRepo,
		payableRepo,
		employeeRepo,
		counterRepo,
		outboxRepo,
	)
	approvalService := approval.NewService(db, approvalRepo)
	payableService := payable.NewService(payableRepo)

	// --- Handlers ---
	rentalHandler := rental.NewHandler(rentalService, calculator, reportService)
	batchHandler := rental.NewBatchHandlerWithRedis(batchService, reportService, rdb)
	approvalHandler := approval.NewHandler(approvalService)
	payableHandler := payable.NewHandler(payableService)

	// --- Routes ---
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(20), 40))
	{
		rental.RegisterRoutes(api, rentalHandler, batchHandler, rdb)
		approval.RegisterRoutes(api, approvalHandler)
		payable.RegisterRoutes(api, payableHandler)
	}

	return nil
}
