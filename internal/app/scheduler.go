package app

import (
	"os"
	"os/signal"
	"syscall"

	"rh-backoffice/internal/absence"
	"rh-backoffice/internal/approval"
	"rh-backoffice/internal/employee"
	"rh-backoffice/internal/messaging/kafka"
	"rh-backoffice/internal/payable"
	"rh-backoffice/internal/rental"
	"rh-backoffice/internal/schedule"
	"rh-backoffice/internal/scheduler"
	"rh-backoffice/internal/shared/connection"
	"rh-backoffice/internal/shared/counter"

	"go.uber.org/zap"
)

func RunScheduler() error {
	logger := zap.L().Named("app.scheduler")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	employeeRepo := employee.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	absenceRepo := absence.NewRepository(gormDB)
	rentalRepo := rental.NewRepository(gormDB)
	paymentRepo := rental.NewPaymentRepository(gormDB)
	approvalRepo := approval.NewRepository(gormDB)
	payableRepo := payable.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	resolver := schedule.NewResolver(scheduleRepo)
	collector := absence.NewCollector(absenceRepo, resolver)
	calculator := rental.NewCalculatorWithAggregate(
		rentalRepo,
		employeeRepo,
		collector,
		resolver,
		rental.NewPgAggregateSource(gormDB),
	)

	batchService := rental.NewBatchService(
		sqlDB,
		calculator,
		paymentRepo,
		approvalRepo,
		payableRepo,
		employeeRepo,
		counterRepo,
		outboxRepo,
	)

	sched := scheduler.NewScheduler(batchService, rentalRepo, logger)
	if err := sched.Register(os.Getenv("BATCH_CRON_SPEC")); err != nil {
		return err
	}
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
